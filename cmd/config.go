package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/datainspect-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataInspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "format: %s\n", c.Format)
		fmt.Fprintf(out, "max_rows: %d\n", c.MaxRows)
		fmt.Fprintf(out, "outlier_z: %g\n", c.OutlierZ)
		fmt.Fprintf(out, "missing_warn_ratio: %g\n", c.MissingWarnRatio)
		fmt.Fprintf(out, "unique_warn_ratio: %g\n", c.UniqueWarnRatio)
		fmt.Fprintf(out, "near_constant_eps: %g\n", c.NearConstantEps)
		fmt.Fprintf(out, "correlations: %t\n", c.Correlations)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "format":
			switch val {
			case "table", "markdown", "json", "yaml":
				cfg.Format = val
			default:
				return fmt.Errorf("invalid format: %s (use table|markdown|json|yaml)", val)
			}
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "outlier_z":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for outlier_z: %v", val)
			}
			cfg.OutlierZ = f
		case "missing_warn_ratio":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f >= 1 {
				return fmt.Errorf("invalid ratio for missing_warn_ratio: %v", val)
			}
			cfg.MissingWarnRatio = f
		case "unique_warn_ratio":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f >= 1 {
				return fmt.Errorf("invalid ratio for unique_warn_ratio: %v", val)
			}
			cfg.UniqueWarnRatio = f
		case "near_constant_eps":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for near_constant_eps: %v", val)
			}
			cfg.NearConstantEps = f
		case "correlations":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for correlations: %v", val)
			}
			cfg.Correlations = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Config initialized")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
}
