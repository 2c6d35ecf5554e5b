package converter

import "testing"

// benchSource exercises every construct the converter supports.
const benchSource = `total = 0
limit = 100
i = 0
while i < limit:
    total = total + i
    i = i + 1
for j in range(0, 10):
    total = total * 2
if total > 50:
    total = 50
`

func BenchmarkLex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Lex(benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	tokens, err := Lex(benchSource)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(tokens, benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Convert(benchSource); err != nil {
			b.Fatal(err)
		}
	}
}
