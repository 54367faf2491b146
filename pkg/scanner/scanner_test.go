package scanner

import "testing"

func TestExtractWorkloadName(t *testing.T) {
	cases := []struct {
		pod  string
		want string
	}{
		{"api-server-7d9f8b-xyz12", "api-server"},
		{"postgres-test-0", "postgres-test"},
		{"standalone", "standalone"},
	}

	for _, tc := range cases {
		if got := extractWorkloadName(tc.pod); got != tc.want {
			t.Errorf("extractWorkloadName(%q) = %q, want %q", tc.pod, got, tc.want)
		}
	}
}

func TestAnnotationFloat(t *testing.T) {
	annotations := map[string]string{
		AnnotationDuration: "2.5",
		AnnotationBudget:   "not-a-number",
	}

	if got := annotationFloat(annotations, AnnotationDuration, 1.0); got != 2.5 {
		t.Errorf("Expected 2.5 from annotation, got %g", got)
	}
	if got := annotationFloat(annotations, AnnotationBudget, 10); got != 10 {
		t.Errorf("Expected fallback 10 for bad value, got %g", got)
	}
	if got := annotationFloat(nil, AnnotationDuration, 1.0); got != 1.0 {
		t.Errorf("Expected fallback 1.0 for nil annotations, got %g", got)
	}
}
