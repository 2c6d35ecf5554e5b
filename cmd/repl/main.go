package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"py2sigma/pkg/converter"
)

const (
	historyFile = ".py2sigma_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var banner = "py2sigma REPL. A block is compiled when closed by an empty line.\n" +
	"Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func main() {
	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)

	if f, err := os.Open(historyPath()); err == nil {
		rl.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath()); err == nil {
			rl.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println(banner)

	var buf []string
	for {
		prompt := promptMain
		if len(buf) > 0 {
			prompt = promptCont
		}
		input, err := rl.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			buf = buf[:0]
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			return
		}

		trimmed := strings.TrimSpace(input)
		if len(buf) == 0 {
			if trimmed == "" {
				continue
			}
			if trimmed == ":quit" {
				return
			}
			rl.AppendHistory(input)
			buf = append(buf, input)
			if strings.HasSuffix(trimmed, ":") {
				continue // block opened, keep reading until an empty line
			}
		} else if trimmed != "" {
			rl.AppendHistory(input)
			buf = append(buf, input)
			continue
		}

		src := strings.Join(buf, "\n") + "\n"
		buf = buf[:0]
		asm, err := converter.Convert(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(asm)
	}
}
