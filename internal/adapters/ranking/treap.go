package ranking

import "math/rand/v2"

// Treap ordered by score DESC, then lead id ASC, so an in-order walk yields
// the ranking from best to worst.
type node struct {
	id    string
	score int
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// before reports whether (aScore, aID) ranks ahead of (bScore, bID).
func before(aScore int, aID string, bScore int, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, score int) *node {
	if n == nil {
		return &node{id: id, score: score, prio: rand.Uint64(), size: 1}
	}
	if before(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func remove(n *node, id string, score int) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.id == id && n.score == score:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, id, score)
		}
	case before(score, id, n.score, n.id):
		n.left = remove(n.left, id, score)
	default:
		n.right = remove(n.right, id, score)
	}
	fix(n)
	return n
}

// walk visits nodes in rank order until visit returns false.
func walk(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, visit) {
		return false
	}
	if !visit(n) {
		return false
	}
	return walk(n.right, visit)
}
