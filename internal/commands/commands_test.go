package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskflow/internal/apierr"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/notify"
	"taskflow/internal/session"
	"taskflow/internal/store"
	"taskflow/internal/testutil"
)

// newApp builds an App around fakes with an already-restored session,
// the way the dispatcher's factory does for a logged-in user.
func newApp(t *testing.T, svc *testutil.FakeService) *commands.App {
	t.Helper()
	hub := notify.NewHub(notify.Discard)
	record := testutil.NewFakeRecord(testutil.ValidToken, `{"username":"alice"}`)
	sess := session.New(svc, record, hub)
	st := store.New(svc, sess)
	app := &commands.App{Session: sess, Store: st, Service: svc, Notify: hub}
	if !sess.Restore() {
		t.Fatal("expected session restore to succeed")
	}
	return app
}

// newLoggedOutApp builds an App with no stored session.
func newLoggedOutApp(svc *testutil.FakeService) *commands.App {
	hub := notify.NewHub(notify.Discard)
	record := testutil.NewFakeRecord("", "")
	sess := session.New(svc, record, hub)
	st := store.New(svc, sess)
	return &commands.App{Session: sess, Store: st, Service: svc, Notify: hub}
}

// runCommand is a helper to run a command against an App.
func runCommand(t *testing.T, cmd commands.Command, app *commands.App, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}
	code = cmd.Run(context.Background(), cfg, app, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskflow 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

func TestListCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("Buy milk", "", false)
	svc.Seed("Buy eggs", "", true)
	app := newApp(t, svc)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, app, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Buy eggs\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_OpenFilterKeepsNumbering(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("done already", "", true)
	svc.Seed("still open", "", false)
	app := newApp(t, svc)

	cmd := &commands.ListCmd{}
	cmd.SetFilters(true, false)
	stdout, _, code := runCommand(t, cmd, app, nil, false)

	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	// The open task keeps its position number 2.
	expected := "   2  [ ] still open\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_ConflictingFilters(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newApp(t, svc)

	cmd := &commands.ListCmd{}
	cmd.SetFilters(true, true)
	_, stderr, code := runCommand(t, cmd, app, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: cannot use both --open and --completed\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newApp(t, svc)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, app, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	tasks := app.Store.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestAddCommand_WithDescription(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newApp(t, svc)

	cmd := &commands.AddCmd{}
	cmd.SetDescription("2 liters")
	_, _, code := runCommand(t, cmd, app, []string{"Buy milk"}, true)

	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	tasks := app.Store.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "2 liters" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestAddCommand_MissingTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newApp(t, svc)

	_, stderr, code := runCommand(t, &commands.AddCmd{}, app, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("stderr = %q", stderr)
	}
	if svc.Calls["CreateTodo"] != 0 {
		t.Error("missing title must not reach the backend")
	}
}

func TestDoneCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("task", "", false)
	app := newApp(t, svc)

	stdout, _, code := runCommand(t, &commands.DoneCmd{}, app, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if stdout != "ok\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !app.Store.Tasks()[0].Completed {
		t.Error("expected task toggled to completed")
	}
}

func TestDoneCommand_BadNumber(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("task", "", false)
	app := newApp(t, svc)

	tests := []struct {
		args   []string
		stderr string
	}{
		{nil, "error: task number required\n"},
		{[]string{"abc"}, "error: invalid task number: abc\n"},
		{[]string{"5"}, "error: task number out of range: 5\n"},
		{[]string{"0"}, "error: task number out of range: 0\n"},
	}
	for _, tt := range tests {
		_, stderr, code := runCommand(t, &commands.DoneCmd{}, app, tt.args, false)
		if code != exitcode.UserError {
			t.Errorf("args %v: exit code %d", tt.args, code)
		}
		if stderr != tt.stderr {
			t.Errorf("args %v: stderr = %q, want %q", tt.args, stderr, tt.stderr)
		}
	}
}

func TestEditCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("old", "", false)
	app := newApp(t, svc)

	_, _, code := runCommand(t, &commands.EditCmd{}, app, []string{"1", "new", "title"}, true)

	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if got := app.Store.Tasks()[0].Text; got != "new title" {
		t.Errorf("title = %q", got)
	}
}

func TestEditCommand_MissingTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("old", "", false)
	app := newApp(t, svc)

	_, stderr, code := runCommand(t, &commands.EditCmd{}, app, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("exit code %d", code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRmCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("doomed", "", false)
	app := newApp(t, svc)

	_, _, code := runCommand(t, &commands.RmCmd{}, app, []string{"1"}, true)

	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if len(app.Store.Tasks()) != 0 {
		t.Error("expected empty list after rm")
	}
	if svc.Calls["DeleteTodo"] != 1 {
		t.Error("expected one backend delete")
	}
}

func TestShowCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("task one", "with detail", true)
	app := newApp(t, svc)

	stdout, stderr, code := runCommand(t, &commands.ShowCmd{}, app, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	for _, want := range []string{"title:       task one", "description: with detail", "state:       completed"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}
	if svc.Calls["GetTodo"] != 1 {
		t.Error("show must fetch fresh from the backend")
	}
}

func TestWhoamiCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newApp(t, svc)

	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, app, nil, false)
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if stdout != "alice\n" {
		t.Errorf("stdout = %q", stdout)
	}

	app.Session.Logout()
	stdout, _, _ = runCommand(t, &commands.WhoamiCmd{}, app, nil, false)
	if stdout != "not logged in\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestPingCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newLoggedOutApp(svc)

	stdout, _, code := runCommand(t, &commands.PingCmd{}, app, nil, false)
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if stdout != "UP\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRefreshCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newApp(t, svc)

	_, _, code := runCommand(t, &commands.RefreshCmd{}, app, nil, true)
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if app.Session.Token() == testutil.ValidToken {
		t.Error("expected a new token")
	}
}

func TestRefreshCommand_FailureEndsSession(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newApp(t, svc)
	svc.RefreshErr = errForbidden()

	_, stderr, code := runCommand(t, &commands.RefreshCmd{}, app, nil, false)
	if code != exitcode.AuthError {
		t.Errorf("exit code %d", code)
	}
	if !strings.HasPrefix(stderr, "error: token refresh failed, logged out:") {
		t.Errorf("stderr = %q", stderr)
	}
	if app.Session.Active() {
		t.Error("session must end on refresh failure")
	}
}

func errForbidden() error {
	return apierr.FromStatus(401, "invalid token")
}
