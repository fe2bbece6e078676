package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/parse"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Indent int    `cli:"name=indent desc='indentation width, 0 for a single line'"`
	Tab    bool   `cli:"name=tab desc='indent with tabs'"`
	Color  bool   `cli:"name=color desc='encode with color'"`
	Config string `cli:"name=config desc='TOML file with defaults for these options'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// Defaults is the content of a -config file. Options given on the
// command line take precedence.
type Defaults struct {
	Indent *int           `toml:"indent"`
	Tab    *bool          `toml:"tab"`
	Color  *bool          `toml:"color"`
	Input  *format.Format `toml:"input"`
	Output *format.Format `toml:"output"`
}

const configEnv = "RSON_CONFIG"

func loadDefaults(path string) (*Defaults, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res := &Defaults{}
	if err := toml.Unmarshal(d, res); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return res, nil
}

// applyDefaults loads the -config file, or the one named by
// $RSON_CONFIG, into the options not set on the command line.
func (cfg *MainConfig) applyDefaults() error {
	path := cfg.Config
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return nil
	}
	defs, err := loadDefaults(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if defs.Indent != nil && !cfg.isSet("indent") {
		cfg.Indent = *defs.Indent
	}
	if defs.Tab != nil && !cfg.isSet("tab") {
		cfg.Tab = *defs.Tab
	}
	if defs.Color != nil && !cfg.isSet("color") {
		cfg.Color = *defs.Color
	}
	if defs.Input != nil && cfg.InFormat == nil {
		cfg.InFormat = defs.Input
	}
	if defs.Output != nil && cfg.OutFormat == nil {
		cfg.OutFormat = defs.Output
	}
	return nil
}

// isSet reports whether the named main option was given.
func (cfg *MainConfig) isSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat(file string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if f, ok := format.FromSuffix(filepath.Ext(file)); ok {
		return f
	}
	return format.RSONFormat
}

// parseOpts returns the decoding options for file, "-" being standard
// input. Without -I the format follows the file suffix.
func (cfg *MainConfig) parseOpts(file string) []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat(file))}
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.RSONFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
	}
	if cfg.Tab {
		res = append(res, encode.IndentString("\t"))
	} else {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: as given by
// -color, or else when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.isSet("color") {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the files'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report errors'"`

	Check *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type RefsConfig struct {
	*MainConfig

	Refs *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Drop string `cli:"name=drop desc='expression selecting members to drop'"`
	Keep string `cli:"name=keep desc='expression selecting members to keep'"`

	Filter *cli.Command
}
