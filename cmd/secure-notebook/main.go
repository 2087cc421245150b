// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

// secure-notebook confines notebook kernels with macOS sandbox-exec.
//
// Usage:
//
//	secure-notebook generate [flags]
//	secure-notebook minify [file]
//	secure-notebook run [flags] -- <command> [args...]
//	secure-notebook validate [flags]
//	secure-notebook list-profiles
//	secure-notebook show-profile <name>
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cs50victor/secure-notebook/lib/config"
	"github.com/cs50victor/secure-notebook/lib/version"
	"github.com/cs50victor/secure-notebook/seatbelt"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Set up logging.
	logLevel := slog.LevelInfo
	if os.Getenv("SECURE_NOTEBOOK_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "generate":
		err = generateCmd(args, logger)
	case "minify":
		err = minifyCmd(args)
	case "run":
		err = runCmd(args, logger)
	case "validate":
		err = validateCmd(args, logger)
	case "list-profiles":
		err = listProfilesCmd(args)
	case "show-profile":
		err = showProfileCmd(args)
	case "version":
		fmt.Printf("secure-notebook %s\n", version.Full())
		return
	case "--version", "-v":
		fmt.Printf("secure-notebook %s\n", version.Info())
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		// Check for exit code errors.
		if code, ok := seatbelt.IsExitError(err); ok {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`secure-notebook - Sandbox notebook kernels with sandbox-exec

USAGE
    secure-notebook <command> [flags] [-- <args>...]

COMMANDS
    generate      Generate a sandbox profile
    minify        Collapse a profile to a single line
    run           Run a command in the sandbox
    validate      Validate a profile before use
    list-profiles List available permission profiles
    show-profile  Show a resolved permission profile
    version       Show version

EXAMPLES
    # Generate the default notebook profile
    secure-notebook generate --workspace=/path/to/notebooks

    # Launch a kernel offline
    secure-notebook run --profile=notebook-offline --workspace=/work -- jupyter-server --no-browser

    # Validate before running
    secure-notebook validate --profile=notebook --workspace=/work

ENVIRONMENT
    SECURE_NOTEBOOK_CONFIG     Path to the master config file
    SECURE_NOTEBOOK_WORKSPACE  Default workspace directory
    SECURE_NOTEBOOK_DEBUG      Enable debug logging
`)
}

// permissionFlags are the per-category override flags shared by
// generate, run, and validate.
type permissionFlags struct {
	allowRead  []string
	denyRead   []string
	allowWrite []string
	denyWrite  []string
	allowNet   bool
	allowRun   []string
	denyRun    []string
}

func (f *permissionFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVar(&f.allowRead, "allow-read", nil, "Allow reads under path (repeatable, replaces the profile's list)")
	fs.StringArrayVar(&f.denyRead, "deny-read", nil, "Deny reads under path (repeatable)")
	fs.StringArrayVar(&f.allowWrite, "allow-write", nil, "Allow writes under path (repeatable)")
	fs.StringArrayVar(&f.denyWrite, "deny-write", nil, "Deny writes under path (repeatable)")
	fs.BoolVar(&f.allowNet, "allow-net", false, "Allow network access")
	fs.StringArrayVar(&f.allowRun, "allow-run", nil, "Allow executing program (repeatable)")
	fs.StringArrayVar(&f.denyRun, "deny-run", nil, "Deny executing program (repeatable)")
}

// apply replaces permission categories for which flags were given. Each
// category keeps the setter's last-set-wins semantics: a flag list
// replaces whatever the profile declared.
func (f *permissionFlags) apply(perms *seatbelt.PermissionSet) error {
	if len(f.allowRead) > 0 {
		if err := perms.AllowRead(f.allowRead); err != nil {
			return err
		}
	}
	if len(f.denyRead) > 0 {
		if err := perms.DenyRead(f.denyRead); err != nil {
			return err
		}
	}
	if len(f.allowWrite) > 0 {
		if err := perms.AllowWrite(f.allowWrite); err != nil {
			return err
		}
	}
	if len(f.denyWrite) > 0 {
		if err := perms.DenyWrite(f.denyWrite); err != nil {
			return err
		}
	}
	if f.allowNet {
		perms.AllowNetwork()
	}
	if len(f.allowRun) > 0 {
		if err := perms.AllowRun(f.allowRun); err != nil {
			return err
		}
	}
	if len(f.denyRun) > 0 {
		if err := perms.DenyRun(f.denyRun); err != nil {
			return err
		}
	}
	return nil
}

// loadProfiles loads permission profiles from the appropriate source.
// If SECURE_NOTEBOOK_CONFIG names a profiles file, load it on top of
// the built-in defaults; otherwise fall back to the search paths.
func loadProfiles(cfg *config.Config, logger *slog.Logger) (*seatbelt.ProfileLoader, error) {
	if cfg.Sandbox.ProfilesFile != "" {
		loader := seatbelt.NewProfileLoader()
		loader.SetLogger(logger)
		if err := loader.LoadDefaults(); err != nil {
			return nil, err
		}
		logger.Debug("loading profiles from config", "path", cfg.Sandbox.ProfilesFile)
		if err := loader.LoadFile(cfg.Sandbox.ProfilesFile); err != nil {
			return nil, fmt.Errorf("failed to load profiles from %s: %w", cfg.Sandbox.ProfilesFile, err)
		}
		return loader, nil
	}

	return seatbelt.LoadFromSearchPathsWithLogger(logger)
}

// loadTemplate returns the baseline template text: the --template flag
// wins, then the config's template_file, then the embedded default.
func loadTemplate(templateFlag string, cfg *config.Config) (string, error) {
	path := templateFlag
	if path == "" {
		path = cfg.Sandbox.TemplateFile
	}
	if path == "" {
		return seatbelt.DefaultTemplate, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// buildVars assembles the ${VAR} expansion set for profile paths.
func buildVars(workspace string, cfg *config.Config) seatbelt.Variables {
	vars := seatbelt.DefaultVariables()
	if cfg.Sandbox.Workspace != "" {
		vars["WORKSPACE"] = cfg.Sandbox.Workspace
	}
	if workspace != "" {
		vars["WORKSPACE"] = workspace
	}
	return vars
}

// buildPermissions resolves a profile and applies flag overrides.
func buildPermissions(profileName, workspace string, flags *permissionFlags, cfg *config.Config, logger *slog.Logger) (*seatbelt.PermissionSet, error) {
	if profileName == "" {
		profileName = cfg.Sandbox.DefaultProfile
	}

	loader, err := loadProfiles(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	profile, err := loader.Resolve(profileName)
	if err != nil {
		return nil, err
	}

	perms, err := profile.ToPermissionSet(buildVars(workspace, cfg))
	if err != nil {
		return nil, err
	}

	if err := flags.apply(perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// generateCmd implements the "generate" command.
func generateCmd(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("generate", pflag.ExitOnError)
	profileName := fs.String("profile", "", "Permission profile name (default from config)")
	workspace := fs.String("workspace", "", "Workspace directory for ${WORKSPACE}")
	templateFlag := fs.String("template", "", "Baseline template file (default: embedded)")
	minify := fs.Bool("minify", false, "Collapse the profile to a single line")
	output := fs.String("output", "", "Write the profile to a file instead of stdout")
	var flags permissionFlags
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	perms, err := buildPermissions(*profileName, *workspace, &flags, cfg, logger)
	if err != nil {
		return err
	}

	template, err := loadTemplate(*templateFlag, cfg)
	if err != nil {
		return err
	}

	profile := seatbelt.Generate(template, perms)
	if *minify {
		profile = seatbelt.Minify(profile) + "\n"
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(profile), 0o644)
	}
	fmt.Print(profile)
	return nil
}

// minifyCmd implements the "minify" command. Reads from the file
// argument, or stdin when absent.
func minifyCmd(args []string) error {
	fs := pflag.NewFlagSet("minify", pflag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	var err error
	switch len(fs.Args()) {
	case 0:
		data, err = io.ReadAll(os.Stdin)
	case 1:
		data, err = os.ReadFile(fs.Args()[0])
	default:
		return fmt.Errorf("expected at most one file argument")
	}
	if err != nil {
		return err
	}

	fmt.Println(seatbelt.Minify(string(data)))
	return nil
}

// runCmd implements the "run" command.
func runCmd(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("run", pflag.ExitOnError)
	profileName := fs.String("profile", "", "Permission profile name (default from config)")
	workspace := fs.String("workspace", "", "Workspace directory for ${WORKSPACE}")
	templateFlag := fs.String("template", "", "Baseline template file (default: embedded)")
	dryRun := fs.Bool("dry-run", false, "Print the command without executing")
	var flags permissionFlags
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	command := fs.Args()
	if len(command) == 0 {
		return fmt.Errorf("command is required after --")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	perms, err := buildPermissions(*profileName, *workspace, &flags, cfg, logger)
	if err != nil {
		return err
	}

	template, err := loadTemplate(*templateFlag, cfg)
	if err != nil {
		return err
	}

	sb, err := seatbelt.New(seatbelt.Config{
		Template:    template,
		Permissions: perms,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if *dryRun {
		argv, err := sb.DryRun(command)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(argv, " \\\n  "))
		return nil
	}

	// Forward SIGINT/SIGTERM to the sandboxed command via context.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return sb.Run(ctx, command)
}

// validateCmd implements the "validate" command.
func validateCmd(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("validate", pflag.ExitOnError)
	profileName := fs.String("profile", "", "Permission profile name (default from config)")
	workspace := fs.String("workspace", "", "Workspace directory for ${WORKSPACE}")
	templateFlag := fs.String("template", "", "Baseline template file (default: embedded)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	name := *profileName
	if name == "" {
		name = cfg.Sandbox.DefaultProfile
	}

	loader, err := loadProfiles(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	profile, err := loader.Resolve(name)
	if err != nil {
		return err
	}

	template, err := loadTemplate(*templateFlag, cfg)
	if err != nil {
		return err
	}

	validator := seatbelt.NewValidator()
	validator.ValidateAll(profile, template, buildVars(*workspace, cfg))
	validator.PrintResults(os.Stdout)

	if validator.HasErrors() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// listProfilesCmd implements the "list-profiles" command.
func listProfilesCmd(args []string) error {
	fs := pflag.NewFlagSet("list-profiles", pflag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	loader, err := loadProfiles(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}

	for _, name := range loader.List() {
		profile, err := loader.Resolve(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-20s %s\n", name, profile.Description)
	}
	return nil
}

// showProfileCmd implements the "show-profile" command.
func showProfileCmd(args []string) error {
	fs := pflag.NewFlagSet("show-profile", pflag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return fmt.Errorf("expected exactly one profile name")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	loader, err := loadProfiles(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}

	profile, err := loader.Resolve(fs.Args()[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(profile)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
