// Package shell is an interactive console for playing with the engine:
// loading lexica, setting racks, generating and committing plays.
package shell

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crosshatch/config"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/game"
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/movegen"
	"github.com/domino14/crosshatch/selector"
	"github.com/domino14/crosshatch/tilemapping"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	session    *game.Session
	dawg       *dawg.SimpleDawg
	dist       *tilemapping.LetterDistribution
	strategies map[string]selector.Strategy
	curPlays   []*move.Move
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("load"),
	readline.PcItem("rack"),
	readline.PcItem("gen"),
	readline.PcItem("hist"),
	readline.PcItem("sel"),
	readline.PcItem("play"),
	readline.PcItem("pass"),
	readline.PcItem("exchange"),
	readline.PcItem("board"),
	readline.PcItem("bag"),
	readline.PcItem("check"),
	readline.PcItem("hooks"),
	readline.PcItem("strategies"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcrosshatch>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		AutoComplete:        completer,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := &ShellController{l: l, cfg: cfg}
	strategies, err := selector.LoadStrategies(cfg.StrategiesPath)
	if err != nil {
		log.Debug().Err(err).Msg("no strategies file; only 'strongest' available")
		strategies = map[string]selector.Strategy{}
	}
	if _, ok := strategies["strongest"]; !ok {
		strategies["strongest"] = selector.Strategy{Kind: selector.Strongest}
	}
	sc.strategies = strategies
	return sc
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.l.Stderr())
}

// Loop reads and executes commands until exit or interrupt.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		fields, err := shellquote.Split(line)
		if err != nil {
			sc.showError(err)
			continue
		}
		sc.execute(fields[0], fields[1:])
	}
	log.Debug().Msg("Exiting readline loop...")
}

func (sc *ShellController) execute(cmd string, args []string) {
	var err error
	switch cmd {
	case "load":
		err = sc.load(args)
	case "rack":
		err = sc.setRack(args)
	case "gen":
		err = sc.generate(args)
	case "hist":
		err = sc.histogram()
	case "sel":
		err = sc.selectPlay(args)
	case "play":
		err = sc.play(args)
	case "pass":
		err = sc.pass()
	case "exchange":
		err = sc.exchange(args)
	case "board":
		err = sc.showBoard()
	case "bag":
		err = sc.showBag()
	case "check":
		err = sc.check(args)
	case "hooks":
		err = sc.hooks(args)
	case "strategies":
		sc.listStrategies()
	case "help":
		usage(sc.l.Stderr())
	default:
		sc.showMessage("unknown command; type `help` for a list")
	}
	if err != nil {
		sc.showError(err)
	}
}

func (sc *ShellController) requireSession() error {
	if sc.session == nil {
		return fmt.Errorf("no session; `load <lexicon>` first")
	}
	return nil
}

func (sc *ShellController) load(args []string) error {
	lexName := sc.cfg.DefaultLexicon
	if len(args) > 0 {
		lexName = args[0]
	}
	d, err := dawg.Get(sc.cfg, lexName)
	if err != nil {
		return err
	}
	dist, err := tilemapping.NamedLetterDistribution(sc.cfg.DataPath,
		sc.cfg.DefaultLetterDistribution)
	if err != nil {
		return err
	}
	session, err := game.NewSession(sc.cfg, d, dist)
	if err != nil {
		return err
	}
	sc.dawg, sc.dist, sc.session = d, dist, session
	sc.curPlays = nil
	sc.showMessage(fmt.Sprintf("loaded %s (%d node words); rack: %s",
		d.LexiconName(), d.NumNodeWords(), session.Rack().String()))
	return nil
}

func (sc *ShellController) setRack(args []string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: rack <letters>")
	}
	if err := sc.session.SetRack(strings.ToUpper(args[0])); err != nil {
		return err
	}
	sc.showMessage("rack: " + sc.session.Rack().String())
	return nil
}

func (sc *ShellController) generate(args []string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	numPlays := 15
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		numPlays = n
	}
	sc.curPlays = sc.session.GenerateAll(false)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d plays:\n", len(sc.curPlays))
	for i, p := range sc.curPlays {
		if i >= numPlays {
			break
		}
		fmt.Fprintf(&sb, "%3d: %s\n", i+1, p.ShortDescription())
	}
	sc.showMessage(sb.String())
	return nil
}

func (sc *ShellController) histogram() error {
	if len(sc.curPlays) == 0 {
		return fmt.Errorf("no generated plays; `gen` first")
	}
	scores := make([]float64, len(sc.curPlays))
	for i, p := range sc.curPlays {
		scores[i] = float64(p.Score())
	}
	hist := histogram.Hist(15, scores)
	return histogram.Fprint(sc.l.Stderr(), hist, histogram.Linear(40))
}

func (sc *ShellController) selectPlay(args []string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	if len(sc.curPlays) == 0 {
		return fmt.Errorf("no generated plays; `gen` first")
	}
	stratName := "strongest"
	if len(args) > 0 {
		stratName = args[0]
	}
	strat, ok := sc.strategies[stratName]
	if !ok {
		return fmt.Errorf("unknown strategy %q; see `strategies`", stratName)
	}
	opts := []selector.Option{}
	if strat.Kind != selector.Strongest {
		sub, err := dawg.Get(sc.cfg, strat.Lexicon)
		if err != nil {
			return err
		}
		opts = append(opts, selector.WithSubLexicon(sub))
	}
	sel, err := selector.NewSelector(strat, sc.session.Board(), opts...)
	if err != nil {
		return err
	}
	chosen, ok := sel.Select(sc.curPlays)
	if !ok {
		fb := sc.session.FallbackMove()
		sc.showMessage("no qualifying play; fallback: " + fb.ShortDescription())
		return nil
	}
	sc.showMessage("selected: " + chosen.ShortDescription())
	return nil
}

func (sc *ShellController) play(args []string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: play <coords> <word>  (e.g. play H8 QUIXOTE)")
	}
	m, err := move.NewScoringMoveSimple(0, args[0], args[1], "",
		sc.dawg.TileMapping())
	if err != nil {
		return err
	}
	m.SetScore(movegen.ScorePlay(sc.session.Board(), sc.dist, m))
	if err := sc.session.Commit(m); err != nil {
		return err
	}
	sc.curPlays = nil
	sc.showMessage(fmt.Sprintf("played %s for %d (total %d); rack: %s",
		m.ShortDescription(), m.Score(), sc.session.Score(),
		sc.session.Rack().String()))
	return sc.showBoard()
}

func (sc *ShellController) pass() error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	m := move.NewPassMove(sc.session.Rack().TilesOn(), sc.dawg.TileMapping())
	if err := sc.session.Commit(m); err != nil {
		return err
	}
	sc.showMessage("passed")
	return nil
}

func (sc *ShellController) exchange(args []string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: exchange <letters>")
	}
	tiles, err := tilemapping.ToMachineLetters(strings.ToUpper(args[0]),
		sc.dawg.TileMapping())
	if err != nil {
		return err
	}
	m := move.NewExchangeMove(tiles, nil, sc.dawg.TileMapping())
	if err := sc.session.Commit(m); err != nil {
		return err
	}
	sc.curPlays = nil
	sc.showMessage("new rack: " + sc.session.Rack().String())
	return nil
}

func (sc *ShellController) showBoard() error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.showMessage(sc.session.Board().ToDisplayText(sc.dawg.TileMapping()))
	sc.showMessage(fmt.Sprintf("rack: %s   bag: %d   score: %d",
		sc.session.Rack().String(), sc.session.BagCount(), sc.session.Score()))
	return nil
}

func (sc *ShellController) showBag() error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.showMessage(fmt.Sprintf("%d tiles in the bag", sc.session.BagCount()))
	return nil
}

func (sc *ShellController) check(args []string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: check <word> [word...]")
	}
	for i := range args {
		args[i] = strings.ToUpper(args[i])
	}
	invalid, err := sc.session.ValidateWords(args)
	if err != nil {
		return err
	}
	if len(invalid) == 0 {
		sc.showMessage("all valid")
	} else {
		sc.showMessage("NOT in lexicon: " + strings.Join(invalid, " "))
	}
	return nil
}

func (sc *ShellController) hooks(args []string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: hooks <prefix>")
	}
	prefix, err := tilemapping.ToMachineWord(strings.ToUpper(args[0]),
		sc.dawg.TileMapping())
	if err != nil {
		return err
	}
	ls := sc.dawg.LetterSetForPrefix(prefix)
	var hooks []string
	alph := sc.dawg.TileMapping()
	for i := uint8(1); i <= alph.NumLetters(); i++ {
		if ls&(1<<i) != 0 {
			hooks = append(hooks, string(alph.Letter(tilemapping.MachineLetter(i))))
		}
	}
	if len(hooks) == 0 {
		sc.showMessage("no words complete that prefix")
	} else {
		sc.showMessage(strings.Join(hooks, " "))
	}
	return nil
}

func (sc *ShellController) listStrategies() {
	names := make([]string, 0, len(sc.strategies))
	for name := range sc.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		s := sc.strategies[name]
		fmt.Fprintf(&sb, "%-20s kind=%s", name, s.Kind)
		if s.Lexicon != "" {
			fmt.Fprintf(&sb, " lexicon=%s", s.Lexicon)
		}
		if s.Exponent != 0 {
			fmt.Fprintf(&sb, " exponent=%v", s.Exponent)
		}
		sb.WriteString("\n")
	}
	sc.showMessage(sb.String())
}
