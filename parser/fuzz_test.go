package parser

import "testing"

func FuzzParse(f *testing.F) {
	seeds := []string{
		"dim time t\ndim x\nu[t+1, x] = u[t, x] + u[t, x-1]",
		"dim x\nr[x] = A[B[x]] + A[x]",
		"r = sin(x) * cos(x)",
		"dim x\np[x] = sin(u[x]) * c",
		"r = a + b * c - d / e ^ 2",
		"r = -(a + b)",
		"# comment only\ndim time t",
		"r = f(a, b + 1, g(c))",
		"u[i] = u[i] + 1\nv[i] = u[i] * 2",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		p, err := New()
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		p.Parse(input) //nolint:errcheck
	})
}
