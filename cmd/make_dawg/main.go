// make_dawg compiles a plain-text word list into the binary dictionary
// graph format used by the engine.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crosshatch/config"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/tilemapping"
)

func main() {
	filename := flag.String("filename", "", "filename of the word list")
	lexname := flag.String("lexname", "", "name of the lexicon; defaults to the file basename")
	encoding := flag.String("encoding", "utf8", "word list encoding: utf8 or latin1")
	outdir := flag.String("outdir", "", "output directory; defaults to <data-path>/lexica/dawg")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *filename == "" {
		log.Fatal().Msg("-filename is required")
	}
	cfg := &config.Config{}
	if err := cfg.Load(); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	name := *lexname
	if name == "" {
		base := filepath.Base(*filename)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	dist, err := tilemapping.NamedLetterDistribution(cfg.DataPath,
		cfg.DefaultLetterDistribution)
	if err != nil {
		log.Fatal().Err(err).Msg("loading letter distribution")
	}

	d, err := dawg.BuildFromTextFile(dist.TileMapping(), name, *filename,
		dawg.WordListEncoding(*encoding))
	if err != nil {
		log.Fatal().Err(err).Msg("building dawg")
	}

	dir := *outdir
	if dir == "" {
		dir = filepath.Join(cfg.DataPath, "lexica", "dawg")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal().Err(err).Msg("creating output directory")
	}
	out := filepath.Join(dir, name+".dawg")
	if err := d.Save(out); err != nil {
		log.Fatal().Err(err).Msg("saving dawg")
	}
	log.Info().Str("out", out).Int("nodeWords", d.NumNodeWords()).
		Msg("wrote dawg")
}
