package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/codewars-scraper/internal/types"
)

// ChallengeResolver supplies the verification code for a second-factor challenge.
type ChallengeResolver interface {
	Resolve(ctx context.Context, challenge types.SecondFactorChallenge) (string, error)
}

// ResolverFunc adapts a function to ChallengeResolver.
type ResolverFunc func(ctx context.Context, challenge types.SecondFactorChallenge) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, challenge types.SecondFactorChallenge) (string, error) {
	return f(ctx, challenge)
}

// ErrEmptyCode is returned when the user enters no verification code.
var ErrEmptyCode = errors.New("verification code is empty")

// PromptResolver asks for the code interactively, one line from In.
type PromptResolver struct {
	In  io.Reader
	Out io.Writer
}

// Resolve prints the challenge prompt and blocks until a line is read.
func (p *PromptResolver) Resolve(ctx context.Context, challenge types.SecondFactorChallenge) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(p.Out, "%s ", challenge.PromptMessage); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read verification code: %w", err)
	}

	code := strings.TrimSpace(line)
	if code == "" {
		return "", ErrEmptyCode
	}
	return code, nil
}
