package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/eykd/mkpasswd-go/alphabet"
	"github.com/eykd/mkpasswd-go/internal/config"
	"github.com/eykd/mkpasswd-go/internal/entropy"
	"github.com/eykd/mkpasswd-go/internal/lock"
	"github.com/eykd/mkpasswd-go/password"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const customFlag = "alphabet"

// MaxLength is the longest password the command generates.
const MaxLength = 1 << 20

// generateOptions holds the flag state of the root command.
type generateOptions struct {
	count      *positiveInt
	custom     string
	named      map[string]*bool
	output     string
	configPath string
}

// request is a fully resolved generation request.
type request struct {
	name   string
	custom string // text of a custom alphabet, if one was given
	set    alphabet.Set
	length int
	count  int
}

func newGenerateCmd(d deps) *cobra.Command {
	o := &generateOptions{
		count: newPositiveInt(1, 0, ErrInvalidCount),
		named: make(map[string]*bool),
	}

	cmd := &cobra.Command{
		Use:   "mkpasswd [length]",
		Short: "Generate random passwords",
		Long: "mkpasswd generates passwords of the given length (default 32) drawn uniformly\n" +
			"from an alphabet using the operating system's secure random number generator.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			log := newLogger(cmd.ErrOrStderr(), verbose)

			cfg, err := d.loadConfig(o.configPath, log)
			if err != nil {
				return err
			}
			req, err := resolveRequest(cmd, args, o, cfg)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"alphabet":     req.name,
				"size":         req.set.Len(),
				"length":       req.length,
				"count":        req.count,
				"entropy_bits": fmt.Sprintf("%.1f", req.set.EntropyBits(req.length)),
			}).Debug("generating passwords")
			if !req.set.ASCII() {
				log.Warn("alphabet contains multi-byte characters; passwords may not be valid UTF-8")
			}
			if req.custom != "" && !alphabet.IsNFC(req.custom) {
				log.Warn("custom alphabet is not in Unicode NFC form; its bytes are used as given")
			}

			out := cmd.OutOrStdout()
			if o.output != "" {
				var f *lock.File
				f, err = lock.OpenAppend(cmd.Context(), o.output)
				if err != nil {
					return err
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				out = f
			}

			if req.count == 1 {
				return d.generateOne(out, req)
			}
			return d.generateBatch(cmd, out, req, log)
		},
	}

	cmd.Flags().VarP(o.count, "count", "n", "Number of passwords to generate, one per line")
	cmd.Flags().StringVarP(&o.custom, customFlag, "a", "", "Use a custom alphabet")
	exclusive := []string{customFlag}
	for _, e := range alphabet.Catalog() {
		o.named[e.Name] = cmd.Flags().Bool(e.Name, false, "Use "+e.Description)
		exclusive = append(exclusive, e.Name)
	}
	cmd.MarkFlagsMutuallyExclusive(exclusive...)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Append passwords to `file` instead of standard output")
	cmd.Flags().StringVar(&o.configPath, "config", "", "Read defaults from `file`")

	return cmd
}

// loadConfig reads the explicit config file, or the default one if present.
func (d deps) loadConfig(path string, log *logrus.Logger) (*config.Config, error) {
	if path != "" {
		return config.Load(path, false)
	}
	def, err := d.configPath()
	if err != nil {
		log.WithError(err).Debug("no default config location")
		return &config.Config{}, nil
	}
	log.WithField("path", def).Debug("loading config")
	return config.Load(def, true)
}

// resolveRequest combines flags, arguments and config. Flags win over the
// config file, which wins over built-in defaults.
func resolveRequest(cmd *cobra.Command, args []string, o *generateOptions, cfg *config.Config) (*request, error) {
	req := &request{length: password.DefaultLength, count: 1}

	if cfg.Length > MaxLength {
		return nil, &ArgumentError{Arg: "config length", Err: ErrInvalidLength}
	}
	if cfg.Length > 0 {
		req.length = cfg.Length
	}
	if len(args) == 1 {
		n := newPositiveInt(0, MaxLength, ErrInvalidLength)
		if err := n.Set(args[0]); err != nil {
			return nil, &ArgumentError{Arg: strconv.Quote(args[0]), Err: err}
		}
		req.length = n.value
	}

	if cmd.Flags().Changed("count") {
		req.count = o.count.value
	} else if cfg.Count > 0 {
		req.count = cfg.Count
	}

	if err := resolveAlphabet(req, cmd, o, cfg); err != nil {
		return nil, err
	}
	return req, nil
}

func resolveAlphabet(req *request, cmd *cobra.Command, o *generateOptions, cfg *config.Config) error {
	if cmd.Flags().Changed(customFlag) {
		set, err := alphabet.Parse(o.custom)
		if err != nil {
			return &ArgumentError{Arg: "--" + customFlag, Err: err}
		}
		req.set, req.name, req.custom = set, "custom", o.custom
		return nil
	}
	for _, e := range alphabet.Catalog() {
		if *o.named[e.Name] {
			req.set, req.name = e.Set(), e.Name
			return nil
		}
	}

	if cfg.Custom != "" {
		set, err := alphabet.Parse(cfg.Custom)
		if err != nil {
			return &ArgumentError{Arg: "config custom", Err: err}
		}
		req.set, req.name, req.custom = set, "custom", cfg.Custom
		return nil
	}
	if cfg.Alphabet != "" {
		set, ok := alphabet.Lookup(cfg.Alphabet)
		if !ok {
			return &ArgumentError{Arg: strconv.Quote(cfg.Alphabet), Err: ErrUnknownAlphabet}
		}
		req.set, req.name = set, cfg.Alphabet
		return nil
	}
	req.set, _ = alphabet.Lookup(alphabet.DefaultName)
	req.name = alphabet.DefaultName
	return nil
}

// generateOne writes a single password without a trailing newline. Any
// failure is fatal.
func (d deps) generateOne(out io.Writer, req *request) error {
	pw, err := d.sampleOne(req.set, req.length)
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}
	return writePassword(out, pw, false)
}

// generateBatch writes one password per line from a single source. A
// randomness failure for one password is reported and the batch goes on.
func (d deps) generateBatch(cmd *cobra.Command, out io.Writer, req *request, log *logrus.Logger) error {
	rng, err := d.newSource()
	if err != nil {
		return fmt.Errorf("failed to create random number generator: %w", err)
	}

	ctx := cmd.Context()
	failed := 0
	for i := 0; i < req.count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pw, err := password.Sample(req.set, req.length, rng)
		if err != nil {
			failed++
			fmt.Fprint(cmd.ErrOrStderr(), FormatError(err))
			continue
		}
		if err := writePassword(out, pw, true); err != nil {
			return err
		}
	}

	if src, ok := rng.(*entropy.Source); ok {
		log.WithField("bytes", src.BytesRead()).Debug("random data consumed")
	}
	if failed > 0 {
		return &PartialFailureError{Failed: failed, Total: req.count}
	}
	return nil
}
