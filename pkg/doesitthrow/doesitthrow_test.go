package doesitthrow

import "testing"

func TestAnalyze_SimpleThrow(t *testing.T) {
	res, err := Analyze(Input{FileContent: "function f(){ throw new Error(); }"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Errorf("expected at least one diagnostic")
	}
}

func TestAnalyze_FatalParseErrorIsReturnedNotPanicked(t *testing.T) {
	_, err := Analyze(Input{FileContent: "function (, { throw"})
	if err == nil {
		t.Fatalf("expected a fatal parse error")
	}
}
