package typeset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWrap(t *testing.T) {
	face := gridFace{advance: 10, height: 12}
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "short", 100, []string{"short"}},
		{"greedy", "the quick brown fox", 100, []string{"the quick", "brown fox"}},
		{"exact width", "abcde fghij", 50, []string{"abcde", "fghij"}},
		{"long word alone", "a extraordinarily b", 50, []string{"a", "extraordinarily", "b"}},
		{"collapses spaces", "one  two   three", 70, []string{"one two", "three"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, face, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Wrap(%q, %d) 不符 (-want +got):\n%s", tt.text, tt.width, diff)
			}
		})
	}
}

func TestWrapInvariants(t *testing.T) {
	face := gridFace{advance: 7, height: 10}
	texts := []string{
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit",
		"supercalifragilisticexpialidocious is a word",
		"a b c d e f g h i j k l m n o p",
		"   leading and trailing   ",
	}
	for _, text := range texts {
		for _, width := range []int{1, 20, 50, 90, 400} {
			lines := Wrap(text, face, width)
			for i, line := range lines {
				w, _ := face.Measure(line)
				if w > width && len(strings.Fields(line)) != 1 {
					t.Fatalf("第 %d 行超宽且不是单个单词: %q (w=%d, max=%d)", i, line, w, width)
				}
			}
			rejoined := strings.Fields(strings.Join(lines, " "))
			if diff := cmp.Diff(strings.Fields(text), rejoined); diff != "" {
				t.Fatalf("重新拼接后的单词序列不符 (-want +got):\n%s", diff)
			}
		}
	}
}

func TestWrapIsPure(t *testing.T) {
	face := gridFace{advance: 10, height: 12}
	a := Wrap("the quick brown fox jumps", face, 90)
	b := Wrap("the quick brown fox jumps", face, 90)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("相同输入应得到相同输出:\n%s", diff)
	}
}
