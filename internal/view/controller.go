// Package view holds the terminal front-end: form view-models, table
// renderers and one controller per entity.
package view

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Store is the API surface a controller needs; *client.Resource satisfies it.
type Store[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload interface{}) (string, error)
	Update(ctx context.Context, payload interface{}) (string, error)
	Remove(ctx context.Context, id int64) (string, error)
}

// ConfirmFunc asks the user to confirm prompt.
type ConfirmFunc func(prompt string) bool

// ErrNotLoaded is returned by Edit for an id absent from the last load.
var ErrNotLoaded = errors.New("record not in the loaded list")

// PromptConfirm reads a y/N answer from in.
func PromptConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	prompt := color.New(color.FgYellow)
	return func(question string) bool {
		_, _ = prompt.Fprintf(out, "%s [y/N]: ", question)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "s", "si", "sí":
			return true
		}
		return false
	}
}

// crud is the load/submit/delete cycle shared by the entity controllers.
type crud[T any] struct {
	store   Store[T]
	out     io.Writer
	confirm ConfirmFunc
	render  func(io.Writer, []T)
	noun    string
	rows    []T
}

func (b *crud[T]) load(ctx context.Context) error {
	rows, err := b.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("load %ss: %w", b.noun, err)
	}
	b.rows = rows
	if b.out != nil {
		b.render(b.out, rows)
	}
	return nil
}

func (b *crud[T]) submit(ctx context.Context, isNew bool, payload interface{}) (string, error) {
	var (
		msg string
		err error
	)
	if isNew {
		msg, err = b.store.Create(ctx, payload)
	} else {
		msg, err = b.store.Update(ctx, payload)
	}
	if err != nil {
		return "", fmt.Errorf("save %s: %w", b.noun, err)
	}
	return msg, b.load(ctx)
}

// remove returns ("", nil) when the user declines.
func (b *crud[T]) remove(ctx context.Context, id int64) (string, error) {
	if b.confirm != nil && !b.confirm(fmt.Sprintf("Delete %s %d?", b.noun, id)) {
		return "", nil
	}
	msg, err := b.store.Remove(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete %s: %w", b.noun, err)
	}
	return msg, b.load(ctx)
}
