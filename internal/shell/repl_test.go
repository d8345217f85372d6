package shell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	fail  error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.fail
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) AddFood(ctx context.Context) error { return f.record("add", nil) }
func (f *fakeExec) RemoveFood(ctx context.Context, args []string) error {
	return f.record("rm", args)
}
func (f *fakeExec) Recent(ctx context.Context) error   { return f.record("recent", nil) }
func (f *fakeExec) Summary(ctx context.Context) error  { return f.record("summary", nil) }
func (f *fakeExec) AddIssue(ctx context.Context) error { return f.record("issue", nil) }
func (f *fakeExec) RemoveIssue(ctx context.Context, args []string) error {
	return f.record("unissue", args)
}
func (f *fakeExec) Issues(ctx context.Context) error { return f.record("issues", nil) }
func (f *fakeExec) Plan(ctx context.Context, args []string) error {
	return f.record("plan", args)
}
func (f *fakeExec) Recognize(ctx context.Context, args []string) error {
	return f.record("recognize", args)
}

func run(t *testing.T, exec execIface, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r, &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}

	out := run(t, exec,
		"help",
		"recent",
		"login alice",
		"help",
		"add",
		"rm abc",
		"recent",
		"summary",
		"issue",
		"unissue i1",
		"issues",
		"plan regen",
		"recognize meal.jpg",
		"",
		"foobar",
		"logout",
		"exit",
		"add",
	)

	assert.Equal(t, []string{
		"login", "add", "rm", "recent", "summary", "issue", "unissue",
		"issues", "plan", "recognize", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"alice"}, exec.args[0])
	assert.Equal(t, []string{"abc"}, exec.args[2])
	assert.Equal(t, []string{"regen"}, exec.args[8])
	assert.Equal(t, []string{"meal.jpg"}, exec.args[9])

	assert.Contains(t, out, "Available commands: login")
	assert.Contains(t, out, "Please login first.")
	assert.Contains(t, out, "Available commands: add")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "nt status> ")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"), "exit must stop the loop")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{loggedIn: true, fail: errors.New("disk full")}

	out := run(t, exec, "add", "plan")

	assert.Equal(t, []string{"add", "plan"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out, "error: disk full"))
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runREPL(ctx, exec, nil, bufio.NewReader(strings.NewReader("add\n")), &out)
	assert.Empty(t, exec.calls)
	assert.Empty(t, out.String())
}
