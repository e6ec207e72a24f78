package main

import "testing"

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	if err := cmd.ParseFlags([]string{"--config", "/tmp/form.yaml", "--debug"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if got, _ := cmd.Flags().GetString("config"); got != "/tmp/form.yaml" {
		t.Errorf("expected config '/tmp/form.yaml', got %q", got)
	}
	if got, _ := cmd.Flags().GetBool("debug"); !got {
		t.Error("expected debug to be set")
	}
	if !cmd.Flags().Changed("debug") {
		t.Error("expected debug to be marked changed")
	}
}

func TestNewRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Error("expected error for positional arguments")
	}
}
