package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/arloliu/vola/convert"
	"github.com/arloliu/vola/internal/config"
	"github.com/arloliu/vola/internal/logger"
	"github.com/arloliu/vola/section"
	"github.com/arloliu/vola/source"
	"github.com/arloliu/vola/volume"
)

type runner struct {
	cfg *config.Config
	log *zap.Logger
}

// before loads the config file and sets up logging.
func (r *runner) before(c *cli.Context) error {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return err
	}
	if c.IsSet(flagLogLevel) {
		cfg.Logging.Level = c.String(flagLogLevel)
	}
	if c.IsSet(flagLogFile) {
		cfg.Logging.LogFile = c.String(flagLogFile)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		if cfg.Logging.MaxSizeMB > 0 {
			fileCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		}
		if cfg.Logging.MaxBackups > 0 {
			fileCfg.MaxBackups = cfg.Logging.MaxBackups
		}
		if cfg.Logging.MaxAgeDays > 0 {
			fileCfg.MaxAgeDays = cfg.Logging.MaxAgeDays
		}
	}
	l, err := logger.New(cfg.Logging.Level, fileCfg, c.App.ErrWriter)
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.log = l

	return nil
}

// after flushes the logger built by before.
func (r *runner) after(*cli.Context) error {
	logger.Sync(r.log)

	return nil
}

// applyFlags overrides config values with the flags set on the command line.
func (r *runner) applyFlags(c *cli.Context) {
	enc := &r.cfg.Encode
	if c.IsSet(flagDepth) {
		enc.Depth = c.Int(flagDepth)
	}
	if c.IsSet(flagCRS) {
		enc.CRS = c.String(flagCRS)
	}
	if c.IsSet(flagDense) {
		enc.Density = "sparse"
		if c.Bool(flagDense) {
			enc.Density = "dense"
		}
	}
	if c.IsSet(flagNBits) {
		enc.AttributeLength = c.Int(flagNBits)
	}
	if c.IsSet(flagAttrKind) {
		enc.AttributeKind = c.String(flagAttrKind)
	}
	if c.IsSet(flagCompression) {
		enc.Compression = c.String(flagCompression)
	}
	if c.IsSet(flagClamp) && c.Bool(flagClamp) {
		enc.RangePolicy = "clamp"
	}
	if c.IsSet(flagBigEndian) && c.Bool(flagBigEndian) {
		enc.ByteOrder = "big"
	}
	if c.IsSet(flagJobs) {
		r.cfg.Batch.Jobs = c.Int(flagJobs)
	}
}

func (r *runner) convertAction(kindName string) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%s: expected one input, got %d", kindName, c.NArg())
		}
		kind, err := source.ParseKind(kindName)
		if err != nil {
			return err
		}

		r.applyFlags(c)
		if err := r.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		settings, err := r.cfg.Encode.Settings()
		if err != nil {
			return err
		}

		files, err := source.Discover(c.Args().First(), kind)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			r.log.Warn("no input files", zap.String("input", c.Args().First()))
			return nil
		}
		r.log.Info("processing", zap.Strings("files", files), zap.Int("jobs", r.cfg.Batch.Jobs))

		results, err := convert.New(settings, r.log).ConvertAll(c.Context, files, r.cfg.Batch.Jobs)
		for _, res := range results {
			fmt.Fprintln(c.App.Writer, res)
		}
		fmt.Fprintln(c.App.Writer, convert.Summarize(results))

		return err
	}
}

func (r *runner) infoAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("info: expected at least one file")
	}

	for _, path := range c.Args().Slice() {
		if err := r.info(c, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func (r *runner) info(c *cli.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec, err := volume.NewDecoder(data)
	if err != nil {
		return err
	}
	v, err := dec.Decode()
	if err != nil {
		return err
	}

	h := v.Header()
	order := "little"
	if !h.Flag.IsLittleEndian() {
		order = "big"
	}
	levels := make([]string, 0, v.Depth()+1)
	for _, n := range v.Levels() {
		levels = append(levels, humanize.Comma(int64(n)))
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  size:        %s (body %s, %s)\n",
		humanize.Bytes(uint64(len(data))), humanize.Bytes(h.BodyLength), h.Flag.CompressionType())
	fmt.Fprintf(w, "  layout:      %s, %s-endian\n", v.Density(), order)
	fmt.Fprintf(w, "  depth:       %d (%d cells per axis)\n", v.Depth(), h.CellsPerAxis())
	fmt.Fprintf(w, "  box:         %s\n", v.Box())
	fmt.Fprintf(w, "  crs:         %q\n", v.CRS())
	fmt.Fprintf(w, "  occupied:    %s\n", humanize.Comma(int64(v.Len())))
	fmt.Fprintf(w, "  payload:     %d bytes (%s)\n", v.PayloadWidth(), v.AttributeKind())
	fmt.Fprintf(w, "  levels:      %s\n", strings.Join(levels, " "))
	fmt.Fprintf(w, "  checksum:    %016x\n", h.Checksum)
	fmt.Fprintf(w, "  header:      %d bytes\n", section.HeaderSize)

	return nil
}

func (r *runner) configAction(c *cli.Context) error {
	if path := c.String(flagSave); path != "" {
		if path == "default" {
			dir := config.ConfigDir()
			if dir == "" {
				return errors.New("config: no user config directory")
			}
			path = filepath.Join(dir, "config.yaml")
		}
		if err := r.cfg.SaveTo(path); err != nil {
			return err
		}
		r.log.Info("configuration saved", zap.String("path", path))

		return nil
	}

	data, err := r.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(data)

	return err
}
