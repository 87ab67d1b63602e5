package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Question asks for one free-text or numeric parameter.
type Question struct {
	Label   string
	Unit    string
	Default string
	Help    string
	// Check rejects an answer before it reaches the renderer. Drivers that
	// cannot re-prompt may ignore it; the renderer re-checks.
	Check func(string) error
}

// Prompt renders the label with the unit suffix, e.g. "Fin Pitch (mm)".
func (q Question) Prompt() string {
	if q.Unit == "" {
		return q.Label
	}
	return q.Label + " (" + q.Unit + ")"
}

// Choice asks the user to pick one of Options. Default is an index into
// Options, negative when nothing is preselected.
type Choice struct {
	Label    string
	Options  []string
	Default  int
	Help     string
	PageSize int
}

// Confirmation asks a yes/no question.
type Confirmation struct {
	Label   string
	Default bool
	Help    string
}

// PromptDriver is the terminal seam. The survey implementation talks to the
// process terminal; tests script answers instead.
type PromptDriver interface {
	Ask(ctx context.Context, q Question) (string, error)
	Choose(ctx context.Context, c Choice) (int, error)
	Confirm(ctx context.Context, c Confirmation) (bool, error)
	Say(ctx context.Context, line string) error
}

type surveyDriver struct {
	out io.Writer
}

func newSurveyDriver() *surveyDriver {
	return &surveyDriver{out: os.Stdout}
}

func (d *surveyDriver) Ask(ctx context.Context, q Question) (string, error) {
	var answer string
	var opts []survey.AskOpt
	if check := q.Check; check != nil {
		opts = append(opts, survey.WithValidator(func(v any) error {
			s, _ := v.(string)
			return check(s)
		}))
	}
	err := d.askOne(ctx, &survey.Input{Message: q.Prompt(), Default: q.Default, Help: q.Help}, &answer, opts...)
	return answer, err
}

func (d *surveyDriver) Choose(ctx context.Context, c Choice) (int, error) {
	prompt := &survey.Select{Message: c.Label, Options: c.Options, Help: c.Help, PageSize: c.PageSize}
	if c.Default >= 0 && c.Default < len(c.Options) {
		prompt.Default = c.Options[c.Default]
	}
	var index int
	err := d.askOne(ctx, prompt, &index)
	return index, err
}

func (d *surveyDriver) Confirm(ctx context.Context, c Confirmation) (bool, error) {
	var yes bool
	err := d.askOne(ctx, &survey.Confirm{Message: c.Label, Default: c.Default, Help: c.Help}, &yes)
	return yes, err
}

func (d *surveyDriver) Say(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, line)
	return err
}

// askOne maps Ctrl+C to ErrAborted so callers can exit quietly.
func (d *surveyDriver) askOne(ctx context.Context, prompt survey.Prompt, answer any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, answer, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
