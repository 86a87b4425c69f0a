package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasker/internal/backend/filestore"
	"tasker/internal/cli"
	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
	"tasker/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// fileFactory opens the store the config points at, as main does.
func fileFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	return filestore.New(ctx, cfg.StorePath())
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "Usage:\n") {
		t.Errorf("expected help output, got %q", stdout)
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasker 0.1.0\n" {
		t.Errorf("expected 'tasker 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, nil, "list", "--file")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -file\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	stdout, stderr, code := run(t, fileFactory)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected empty list, got %q", stdout)
	}
	// The store is created on first use.
	if _, err := os.Stat(filepath.Join(dir, config.AppName, config.DefaultStoreFile)); err != nil {
		t.Errorf("store not created: %v", err)
	}
}

func TestDispatcher_FileFlag(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "elsewhere", "todo.json")

	steps := [][]string{
		{"add", "--file", store, "buy", "milk"},
		{"create", "--file", store, "pay", "bills"},
		{"done", "--file", store, "2"},
	}
	for _, args := range steps {
		args = append([]string{args[0], "--config", dir}, args[1:]...)
		if _, stderr, code := run(t, fileFactory, args...); code != exitcode.Success {
			t.Fatalf("%v: exit code %d (%s)", args, code, stderr)
		}
	}

	stdout, _, code := run(t, fileFactory, "ls", "--config", dir, "--file", store)
	if code != exitcode.Success {
		t.Fatalf("ls: exit code %d", code)
	}
	want := "   1  [ ] buy milk\n   2  [x] pay bills\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}

	if _, err := os.Stat(filepath.Join(dir, config.DefaultStoreFile)); !os.IsNotExist(err) {
		t.Error("default store should not be created when --file is given")
	}
}

func TestDispatcher_FlagsAfterPositional(t *testing.T) {
	svc := testutil.NewFakeService()

	// Go's flag package stops at the first positional argument.
	_, stderr, code := run(t, testFactory(svc), "add", "--config", t.TempDir(), "buy", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "buy --quiet" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("create task store dir: permission denied")
	}

	_, stderr, code := run(t, factory, "list", "--config", t.TempDir())

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	expected := "error: storage error: create task store dir: permission denied\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CorruptStore(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, config.DefaultStoreFile)
	if err := os.WriteFile(store, []byte(`[{"description": "a"`), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, fileFactory, "add", "--config", dir, "b")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if !strings.HasPrefix(stderr, "error: corrupt task store "+store) {
		t.Errorf("unexpected stderr %q", stderr)
	}

	data, err := os.ReadFile(store)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[{"description": "a"` {
		t.Errorf("corrupt store was rewritten: %q", data)
	}
}

func TestDispatcher_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("env = \"staging\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, nil, "version", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: unknown env: staging\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKER_ENV", config.EnvProd)

	stdout, stderr, code := run(t, fileFactory, "list", "--config", dir, "--debug")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, `"message":"dispatching command"`) {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
	if !strings.Contains(stderr, `"message":"loaded tasks"`) {
		t.Errorf("expected store debug log on stderr, got %q", stderr)
	}
}
