package strategy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/automenta/mcr/internal/errs"
)

// Strategy is a structured, content-addressed, immutable DAG definition.
type Strategy struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hash      string    `json:"hash"`
	Operation Operation `json:"operation"`
	Nodes     []Node    `json:"nodes"`
}

// computeHash fingerprints the operation and node list so the same
// definition always hashes the same: encoding/json writes map keys in
// sorted order. Slices are hashed in the order given, so reordering
// nodes changes the hash.
func computeHash(operation Operation, nodes []Node) string {
	canon := struct {
		Operation Operation `json:"operation"`
		Nodes     []Node    `json:"nodes"`
	}{Operation: operation, Nodes: nodes}

	data, err := json.Marshal(canon)
	if err != nil {
		// Node is built entirely from this package's own types; a
		// marshal failure here would mean a logic error, not bad input.
		panic(fmt.Sprintf("strategy: hashing a well-formed node set failed: %v", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// New constructs an immutable Strategy, computing its content hash.
func New(id, name string, operation Operation, nodes []Node) (*Strategy, error) {
	if id == "" {
		return nil, errs.New(errs.InvalidInput, "strategy id must not be empty")
	}
	if err := validateDAG(nodes); err != nil {
		return nil, err
	}
	return &Strategy{
		ID:        id,
		Name:      name,
		Hash:      computeHash(operation, nodes),
		Operation: operation,
		Nodes:     nodes,
	}, nil
}

// validateDAG checks that exactly one Return node exists. Whether every
// node's requirements can be satisfied is checked only at run time, by
// topologicalOrder against the seed keys.
func validateDAG(nodes []Node) error {
	returnCount := 0
	for _, n := range nodes {
		if n.Kind == KindReturn {
			returnCount++
		}
	}
	if returnCount != 1 {
		return errs.Newf(errs.InvalidInput, "strategy must have exactly one Return node, found %d", returnCount)
	}
	return nil
}

// topologicalOrder returns nodes ordered so every node's dependencies
// appear before it, using Kahn's algorithm over the produces/requires
// edges. Nodes whose inputs are already satisfiable from seedKeys (the
// initial Pipeline Context) start with in-degree 0. Ties among
// ready nodes are broken by original declaration order, keeping
// execution deterministic for otherwise-independent nodes.
func topologicalOrder(nodes []Node, seedKeys map[string]bool) ([]Node, error) {
	available := make(map[string]bool, len(seedKeys))
	for k := range seedKeys {
		available[k] = true
	}

	indexOf := make(map[string]int, len(nodes))
	for i, n := range nodes {
		indexOf[n.Name] = i
	}

	remaining := make([]Node, len(nodes))
	copy(remaining, nodes)

	var ordered []Node
	for len(remaining) > 0 {
		readyIdx := -1
		for i, n := range remaining {
			ready := true
			for _, req := range n.requires() {
				if !available[req] {
					ready = false
					break
				}
			}
			if ready {
				readyIdx = i
				break
			}
		}
		if readyIdx < 0 {
			return nil, errs.New(errs.InvalidInput, "strategy DAG has an unsatisfiable dependency or a cycle")
		}

		n := remaining[readyIdx]
		ordered = append(ordered, n)
		if out, ok := n.produces(); ok {
			available[out] = true
		} else if n.Kind == KindValidateClauses {
			available[n.ValidateClauses.Input] = true // no-op rebinding, already available
		}
		remaining = append(remaining[:readyIdx], remaining[readyIdx+1:]...)
	}

	return ordered, nil
}
