package driver

import "testing"

func TestParseArgsDefaults(t *testing.T) {
	opt, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs(nil): %s", err)
	}
	if opt.Src != "" || opt.Out != "" || opt.Verbose || opt.TokenStream || opt.EmitIR {
		t.Errorf("expected zero-value Options, got %+v", opt)
	}
	if opt.TargetArch != UnknownArch || opt.TargetOS != UnknownOS || opt.TargetVendor != UnknownVendor {
		t.Errorf("expected unknown target fields, got %+v", opt)
	}
}

func TestParseArgsSourceAndOutput(t *testing.T) {
	opt, err := ParseArgs([]string{"-o", "out.o", "prog.dum"})
	if err != nil {
		t.Fatalf("ParseArgs: %s", err)
	}
	if opt.Out != "out.o" {
		t.Errorf("expected Out %q, got %q", "out.o", opt.Out)
	}
	if opt.Src != "prog.dum" {
		t.Errorf("expected Src %q, got %q", "prog.dum", opt.Src)
	}
}

func TestParseArgsFlags(t *testing.T) {
	opt, err := ParseArgs([]string{"-ir", "-ts", "-vb"})
	if err != nil {
		t.Fatalf("ParseArgs: %s", err)
	}
	if !opt.EmitIR || !opt.TokenStream || !opt.Verbose {
		t.Errorf("expected all three flags set, got %+v", opt)
	}
}

func TestParseArgsTarget(t *testing.T) {
	opt, err := ParseArgs([]string{"-arch", "riscv64", "-os", "linux", "-vendor", "pc"})
	if err != nil {
		t.Fatalf("ParseArgs: %s", err)
	}
	if opt.TargetArch != Riscv64 || opt.TargetOS != Linux || opt.TargetVendor != PC {
		t.Errorf("unexpected target fields: %+v", opt)
	}
}

func TestParseArgsUnknownArch(t *testing.T) {
	if _, err := ParseArgs([]string{"-arch", "z80"}); err == nil {
		t.Errorf("expected an error for an unrecognized architecture identifier")
	}
}

func TestParseArgsMissingFlagArgument(t *testing.T) {
	if _, err := ParseArgs([]string{"-o"}); err == nil {
		t.Errorf("expected an error for -o with no following argument")
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	if _, err := ParseArgs([]string{"-bogus"}); err == nil {
		t.Errorf("expected an error for an unrecognized flag")
	}
}

func TestParseArgsOutputLooksLikeFlag(t *testing.T) {
	if _, err := ParseArgs([]string{"-o", "-arch"}); err == nil {
		t.Errorf("expected an error when -o's argument looks like another flag")
	}
}
