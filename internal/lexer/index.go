package lexer

import "sort"

// CommentIndex supports O(log n) nearest-preceding-comment lookups by
// byte offset. Built once before AST traversal (spec.md §9 design
// note: "perform the comment index build once before AST traversal;
// lookup is then O(log n) per query by offset").
type CommentIndex struct {
	comments []Comment
}

// NewCommentIndex sorts comments by start offset and returns an index.
func NewCommentIndex(comments []Comment) *CommentIndex {
	cs := make([]Comment, len(comments))
	copy(cs, comments)
	sort.Slice(cs, func(i, j int) bool { return cs[i].StartOffset < cs[j].StartOffset })
	return &CommentIndex{comments: cs}
}

// All returns every indexed comment in source order.
func (idx *CommentIndex) All() []Comment { return idx.comments }

// ImmediatelyBefore returns the comment ending at or before offset
// that is closest to it, or nil if none precede offset.
func (idx *CommentIndex) ImmediatelyBefore(offset int) *Comment {
	lo, hi := 0, len(idx.comments)
	for lo < hi {
		mid := (lo + hi) / 2
		if idx.comments[mid].EndOffset <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return nil
	}
	c := idx.comments[lo-1]
	return &c
}

// Within returns every comment starting in [start, end).
func (idx *CommentIndex) Within(start, end int) []Comment {
	var out []Comment
	for _, c := range idx.comments {
		if c.StartOffset >= start && c.StartOffset < end {
			out = append(out, c)
		}
	}
	return out
}
