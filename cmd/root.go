package cmd

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"crsconv/internal/config"
	"crsconv/internal/errors"
	"crsconv/internal/logger"
	"crsconv/internal/transform"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is set at build time with -ldflags "-X crsconv/cmd.Version=...".
var Version = "dev"

const epilog = "Convert between different CRS. Input can be in decimal, or DD*MM'SS.ss'' format."

// legacyDMSFlag is the multi-letter short spelling of --dst-dms, which pflag
// cannot declare as a shorthand.
const legacyDMSFlag = "-ddms"

// negativeToken matches positional arguments such as "-21.5" or
// "-21°0'44''" that pflag would otherwise take for shorthand flags.
var negativeToken = regexp.MustCompile(`^-\.?\d`)

// Deps are the collaborators the command cannot build itself.
type Deps struct {
	NewEngine     func() transform.Engine
	EngineVersion func() string
}

type app struct {
	deps    Deps
	cfg     config.Config
	noDMS   bool
	logging logger.Logger
}

// Execute runs the root command and exits with the code of its outcome.
func Execute(deps Deps) {
	os.Exit(run(deps, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
// Errors are reported as "Error: <message>" on stderr.
func run(deps Deps, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(deps)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(normalizeArgs(root.Flags(), args))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err.Error())
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}

func newRootCmd(deps Deps) *cobra.Command {
	a := &app{
		deps: deps,
		cfg: config.Config{
			Source:      config.DefaultSource,
			Destination: config.DefaultDestination,
			Format:      config.FormatText,
		},
	}

	root := &cobra.Command{
		Use:   "crsconv [flags] <x> <y>",
		Short: "Transform a coordinate pair between coordinate reference systems",
		Long: `crsconv transforms a single x/y coordinate pair from a source CRS to a
destination CRS using PROJ. Coordinates are given either as decimal numbers
or in degrees-minutes-seconds notation (DD°MM'SS.ss'' or DD*MM'SS.ss'').
When the destination CRS is geographic the result can be printed in
degrees-minutes-seconds as well.`,
		Example: `  crsconv 5788521.12 7500123.45
  crsconv --src epsg:4258 --dst epsg:2180 "52°13'46.92''" "21°0'44.12''"
  crsconv -s epsg:2178 -d epsg:4326 --dst-dms 5788521.12 7500123.45`,
		Args:              cobra.ExactArgs(2),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setupLogging,
		RunE:              a.runTransform,
	}

	flags := root.Flags()
	flags.StringVarP(&a.cfg.Source, config.OptSource, "s", config.DefaultSource, "source CRS")
	flags.StringVarP(&a.cfg.Destination, config.OptDestination, "d", config.DefaultDestination, "destination CRS")
	flags.BoolVar(&a.cfg.DestinationDMS, config.OptDestinationDMS, false, "output CRS in degree, minute, second format if applicable (also -ddms)")
	flags.BoolVar(&a.noDMS, "no-dst-dms", false, "output decimal degrees even if a config file enables --dst-dms")
	flags.BoolVar(&a.cfg.AlwaysXY, config.OptAlwaysXY, false, "use longitude/latitude and easting/northing axis order regardless of the CRS definition")
	flags.VarP((*formatFlag)(&a.cfg.Format), config.OptFormat, "f", "output format ("+config.FormatList()+")")
	flags.StringVarP(&a.cfg.ConfigFile, "config", "c", "", "YAML file with defaults for src, dst, dst_dms, always_xy and format")

	root.PersistentFlags().BoolVarP(&a.logging.Verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
	root.PersistentFlags().BoolVar(&a.logging.Debug, "debug", false, "Debug diagnostics on stderr")

	root.MarkFlagsMutuallyExclusive(config.OptDestinationDMS, "no-dst-dms")

	root.SetUsageTemplate(root.UsageTemplate() + "\n" + epilog + "\n")
	root.AddCommand(newVersionCmd(deps))

	return root
}

func (a *app) setupLogging(cmd *cobra.Command, _ []string) error {
	a.logging.Setup(cmd.ErrOrStderr())
	return nil
}

func (a *app) runTransform(cmd *cobra.Command, args []string) error {
	a.cfg.X = args[0]
	a.cfg.Y = args[1]

	if a.noDMS {
		a.cfg.DestinationDMS = false
	}

	if a.cfg.ConfigFile != "" {
		file, err := config.Load(a.cfg.ConfigFile)
		if err != nil {
			return err
		}
		a.cfg.Apply(file, func(option string) bool {
			if option == config.OptDestinationDMS {
				return cmd.Flags().Changed(option) || cmd.Flags().Changed("no-dst-dms")
			}
			return cmd.Flags().Changed(option)
		})
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	return executeTransform(&a.cfg, a.deps.NewEngine(), cmd.OutOrStdout())
}

// normalizeArgs rewrites the legacy -ddms spelling and moves negative
// coordinate tokens behind a "--" terminator so that pflag does not read
// them as shorthand flags. Arguments without negative tokens are left in
// place, which keeps subcommand lookup working.
func normalizeArgs(flags *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args)+1)
	hasNegative := false
	terminated := false
	for _, arg := range args {
		switch {
		case terminated:
		case arg == "--":
			terminated = true
		case arg == legacyDMSFlag:
			arg = "--" + config.OptDestinationDMS
		case negativeToken.MatchString(arg):
			hasNegative = true
		}
		out = append(out, arg)
	}

	if !hasNegative {
		return out
	}

	var flagArgs, positional []string
	for i := 0; i < len(out); i++ {
		arg := out[i]
		switch {
		case arg == "--":
			positional = append(positional, out[i+1:]...)
			i = len(out)
		case negativeToken.MatchString(arg), !strings.HasPrefix(arg, "-"), arg == "-":
			positional = append(positional, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if takesValue(flags, arg) && i+1 < len(out) {
				i++
				flagArgs = append(flagArgs, out[i])
			}
		}
	}

	return append(append(flagArgs, "--"), positional...)
}

// takesValue reports whether a flag given as a separate argument consumes
// the next argument as its value.
func takesValue(flags *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	var flag *pflag.Flag
	switch name := strings.TrimLeft(arg, "-"); {
	case strings.HasPrefix(arg, "--"):
		flag = flags.Lookup(name)
	case len(name) == 1:
		flag = flags.ShorthandLookup(name)
	default:
		// combined shorthands or an attached value, e.g. -sepsg:2178
		return false
	}

	return flag != nil && flag.NoOptDefVal == ""
}

type formatFlag config.OutputFormat

func (f *formatFlag) String() string {
	return string(*f)
}

func (f *formatFlag) Set(v string) error {
	format := config.OutputFormat(strings.ToLower(v))
	if !format.Valid() {
		return fmt.Errorf("must be one of %s", config.FormatList())
	}
	*f = formatFlag(format)
	return nil
}

func (f *formatFlag) Type() string {
	return "string"
}
