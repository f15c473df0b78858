package shell

import "io"

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load [lexicon] - start a session with a lexicon (default from config)\n")
	io.WriteString(w, "rack <letters> - set the rack; use ? for a blank\n")
	io.WriteString(w, "gen [n] - generate all plays, show the top n (default 15)\n")
	io.WriteString(w, "hist - histogram of the scores of the last gen\n")
	io.WriteString(w, "sel [strategy] - pick a play from the last gen (default strongest)\n")
	io.WriteString(w, "play <coords> <word> - commit a play, e.g. `play H8 QUIXOTE`;\n")
	io.WriteString(w, "    use . for tiles already on the board, lowercase for blanks\n")
	io.WriteString(w, "pass - pass the turn\n")
	io.WriteString(w, "exchange <letters> - exchange tiles (needs 7+ in the bag)\n")
	io.WriteString(w, "board - show the board\n")
	io.WriteString(w, "bag - show how many tiles remain\n")
	io.WriteString(w, "check <word> [word...] - check words against the lexicon\n")
	io.WriteString(w, "hooks <prefix> - letters that complete a word after the prefix\n")
	io.WriteString(w, "strategies - list loaded selection strategies\n")
	io.WriteString(w, "exit - quit\n")
}
