package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/haierkeys/portfolio-dash/pkg/code"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// errAlerted is returned once the failure has already been shown to the user
var errAlerted = errors.New("already reported")

// prompter reads answers from stdin and writes prompts and alerts to stderr.
// It implements both service.Alerter and service.Confirmer.
type prompter struct {
	in        *bufio.Reader
	file      *os.File // stdin when it is a terminal
	out       io.Writer
	assumeYes bool

	mu      sync.Mutex
	alerted map[string]bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.file = f
	}
	return p
}

func (p *prompter) Alert(_ context.Context, message string) {
	p.mu.Lock()
	if p.alerted == nil {
		p.alerted = make(map[string]bool)
	}
	p.alerted[message] = true
	p.mu.Unlock()
	fmt.Fprintf(p.out, "⚠ %s\n", message)
}

// settle 已提示过的错误只补充输出详情，返回 errAlerted
func (p *prompter) settle(err error) error {
	var c *code.Code
	if err == nil || !errors.As(err, &c) {
		return err
	}
	p.mu.Lock()
	shown := p.alerted[c.Msg()]
	p.mu.Unlock()
	if !shown {
		return err
	}
	if c.HaveDetails() {
		fmt.Fprintf(p.out, "  %s\n", strings.Join(c.Details(), ", "))
	}
	return errAlerted
}

// Confirm 询问 y/N，--yes 时直接通过
func (p *prompter) Confirm(_ context.Context, prompt string) bool {
	if p.assumeYes {
		return true
	}
	answer, err := p.Line(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Line 读取一行输入
func (p *prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrap(err, "read input")
	}
	return strings.TrimSpace(line), nil
}

// Secret 读取不回显的输入；stdin 不是终端时按普通行读取
func (p *prompter) Secret(prompt string) (string, error) {
	if p.file == nil {
		return p.Line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(int(p.file.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", errors.Wrap(err, "read secret")
	}
	return strings.TrimSpace(string(b)), nil
}
