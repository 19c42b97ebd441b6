// internal/client/cli/repl_test.go
package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	title    string
}

func (f *fakeExec) record(name string) error { f.calls = append(f.calls, name); return nil }

func (f *fakeExec) isLoggedIn() bool                        { return f.loggedIn }
func (f *fakeExec) SwitchForm(ctx context.Context) error    { return f.record("switch") }
func (f *fakeExec) Submit(ctx context.Context) error        { return f.record("submit") }
func (f *fakeExec) SignUp(ctx context.Context) error        { return f.record("signup") }
func (f *fakeExec) Profile(ctx context.Context) error       { return f.record("profile") }
func (f *fakeExec) Reviews(ctx context.Context) error       { return f.record("reviews") }
func (f *fakeExec) Review(ctx context.Context) error        { return f.record("review") }
func (f *fakeExec) Recommend(ctx context.Context) error     { return f.record("recommend") }
func (f *fakeExec) EditUsername(ctx context.Context) error  { return f.record("rename") }
func (f *fakeExec) DeleteProfile(ctx context.Context) error { return f.record("delete") }

func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) Search(ctx context.Context, title string) error {
	f.title = title
	return f.record("search")
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchByState(t *testing.T) {
	lines := silence(t)

	input := strings.NewReader(strings.Join([]string{
		"profile", // not available while anonymous
		"switch",
		"submit",
		"login",
		"",
		"search The Big Lebowski",
		"search",
		"review",
		"recommend",
		"reviews",
		"rename",
		"profile",
		"logout",
		"delete", // not available after logout
		"exit",
		"login", // never reached
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"switch", "submit", "login", "search", "review", "recommend", "reviews", "rename", "profile", "logout"}, exec.calls)
	assert.Equal(t, "The Big Lebowski", exec.title)
	assert.Contains(t, *lines, "Unknown command: profile")
	assert.Contains(t, *lines, "Usage: search <title>")
	assert.Contains(t, *lines, "Unknown command: delete")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	silence(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("signup")))
	assert.Equal(t, []string{"signup"}, exec.calls)
}

func TestRunREPL_HelpDependsOnState(t *testing.T) {
	lines := silence(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\nlogin\nhelp\n")))

	var helps []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands") {
			helps = append(helps, l)
		}
	}
	if assert.Len(t, helps, 2) {
		assert.Contains(t, helps[0], "signup")
		assert.Contains(t, helps[1], "logout")
	}
}
