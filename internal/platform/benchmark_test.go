package platform

import (
	"context"
	"testing"
)

func BenchmarkDetect(b *testing.B) {
	detector := NewDetector()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = detector.Detect(ctx)
	}
}

func BenchmarkIdentifier(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Identifier(OSMacOS, ArchAArch64)
	}
}

func BenchmarkNormalizeArch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = normalizeArch("amd64")
	}
}
