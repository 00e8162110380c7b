package usecases

import (
	"context"
	"errors"
)

// mockLogger implements the Logger interface for testing.
type mockLogger struct {
	infoMsgs  []string
	debugMsgs []string
}

func (m *mockLogger) Info(_ context.Context, msg string, _ map[string]interface{}) {
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Debug(_ context.Context, msg string, _ map[string]interface{}) {
	m.debugMsgs = append(m.debugMsgs, msg)
}
func (m *mockLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}

// scriptedProvider returns pre-set values in order. Once a queue runs dry it
// falls back to a fixed value so tests only script what they assert on.
type scriptedProvider struct {
	words   []string
	phrases []string
	ints    []int

	intMaxes []int
	calls    []string
}

func (p *scriptedProvider) Word() string {
	p.calls = append(p.calls, "word")
	if len(p.words) == 0 {
		return "word"
	}
	w := p.words[0]
	p.words = p.words[1:]
	return w
}

func (p *scriptedProvider) Phrase() string {
	p.calls = append(p.calls, "phrase")
	if len(p.phrases) == 0 {
		return "some phrase"
	}
	s := p.phrases[0]
	p.phrases = p.phrases[1:]
	return s
}

func (p *scriptedProvider) BoundedInt(max int) (int, error) {
	p.calls = append(p.calls, "int")
	p.intMaxes = append(p.intMaxes, max)
	if max < 0 {
		return 0, errors.New("negative max")
	}
	if len(p.ints) == 0 {
		return 0, nil
	}
	n := p.ints[0]
	p.ints = p.ints[1:]
	if n > max {
		n = max
	}
	return n, nil
}
