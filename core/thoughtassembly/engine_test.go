package thoughtassembly

import (
	"errors"
	"testing"

	"github.com/echocore/cogkernel/domain"
)

func mustEngine(t *testing.T, cacheSize, maxChainDepth int) *Engine {
	t.Helper()
	e, err := NewEngine(cacheSize, maxChainDepth, false)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func mustValidatingEngine(t *testing.T, cacheSize, maxChainDepth int) *Engine {
	t.Helper()
	e, err := NewEngine(cacheSize, maxChainDepth, true)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestAssembleFlagsEmptyComposite(t *testing.T) {
	e := mustEngine(t, 100, 50)
	thought, err := e.Assemble(AssembleRequest{Content: domain.Composite()})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !thought.CompositeFlagged {
		t.Fatal("empty Composite should be CompositeFlagged")
	}
}

func TestAssembleRejectsEmptyContent(t *testing.T) {
	e := mustEngine(t, 100, 50)
	_, err := e.Assemble(AssembleRequest{Content: domain.Empty()})
	if _, ok := err.(*domain.EmptyContentError); !ok {
		t.Fatalf("Assemble(Empty) = %v, want EmptyContentError", err)
	}
}

func TestAssembleValidatesSalienceWhenEnabled(t *testing.T) {
	e := mustValidatingEngine(t, 100, 50)
	_, err := e.Assemble(AssembleRequest{
		Content:  domain.Raw([]byte("x")),
		Salience: domain.SalienceScore{Importance: 1.5},
	})
	if _, ok := err.(*domain.InvalidSalienceError); !ok {
		t.Fatalf("Assemble with out-of-range salience = %v, want InvalidSalienceError", err)
	}
}

func TestAssembleSkipsSalienceValidationWhenDisabled(t *testing.T) {
	e := mustEngine(t, 100, 50)
	_, err := e.Assemble(AssembleRequest{
		Content:  domain.Raw([]byte("x")),
		Salience: domain.SalienceScore{Importance: 1.5},
	})
	if err != nil {
		t.Fatalf("Assemble with out-of-range salience, validation disabled: %v", err)
	}
}

func TestAssembleUnknownParentFails(t *testing.T) {
	e := mustEngine(t, 100, 50)
	_, err := e.Assemble(AssembleRequest{
		Content:   domain.Raw([]byte("x")),
		ParentID:  domain.NewThoughtId(),
		HasParent: true,
	})
	if _, ok := err.(*domain.ThoughtNotFoundError); !ok {
		t.Fatalf("Assemble with unknown parent = %v, want ThoughtNotFoundError", err)
	}
}

func TestAssembleChainStrategyDecaysParentConnection(t *testing.T) {
	e := mustEngine(t, 100, 50)
	parent, err := e.Assemble(AssembleRequest{
		Content:  domain.Raw([]byte("root")),
		Salience: domain.SalienceScore{ConnectionRelevance: 0.8},
	})
	if err != nil {
		t.Fatalf("Assemble(parent): %v", err)
	}

	child, err := e.Assemble(AssembleRequest{
		Content:   domain.Raw([]byte("child")),
		Salience:  domain.SalienceScore{ConnectionRelevance: 0.1},
		ParentID:  parent.ID,
		HasParent: true,
		Strategy:  domain.StrategyChain,
	})
	if err != nil {
		t.Fatalf("Assemble(child): %v", err)
	}
	if want := 0.4; child.Salience.ConnectionRelevance != want {
		t.Fatalf("child.ConnectionRelevance = %v, want %v (decayed from parent)", child.Salience.ConnectionRelevance, want)
	}
}

func TestAssembleUrgentStrategyTags(t *testing.T) {
	e := mustEngine(t, 100, 50)
	thought, err := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("now")), Strategy: domain.StrategyUrgent})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !thought.Urgent {
		t.Fatal("StrategyUrgent should set Urgent")
	}
}

func TestAssembleRejectsChainDeeperThanMax(t *testing.T) {
	e := mustEngine(t, 100, 2)
	root, err := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("0"))})
	if err != nil {
		t.Fatalf("Assemble(root): %v", err)
	}
	mid, err := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("1")), ParentID: root.ID, HasParent: true})
	if err != nil {
		t.Fatalf("Assemble(mid): %v", err)
	}
	leaf, err := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("2")), ParentID: mid.ID, HasParent: true})
	if err != nil {
		t.Fatalf("Assemble(leaf): %v", err)
	}

	_, err = e.Assemble(AssembleRequest{Content: domain.Raw([]byte("3")), ParentID: leaf.ID, HasParent: true})
	var tooDeep *domain.ChainTooDeepError
	if !errors.As(err, &tooDeep) {
		t.Fatalf("Assemble beyond max depth = %v, want ChainTooDeepError", err)
	}
}

func TestGetThoughtChainOrdersLeafFirst(t *testing.T) {
	e := mustEngine(t, 100, 50)
	root, _ := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("root"))})
	leaf, err := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("leaf")), ParentID: root.ID, HasParent: true})
	if err != nil {
		t.Fatalf("Assemble(leaf): %v", err)
	}

	chain, err := e.GetThoughtChain(leaf.ID, 10)
	if err != nil {
		t.Fatalf("GetThoughtChain: %v", err)
	}
	if len(chain) != 2 || chain[0].ID != leaf.ID || chain[1].ID != root.ID {
		t.Fatalf("GetThoughtChain = %+v, want [leaf, root]", chain)
	}
}

func TestGetThoughtChainStopsAtRequestedDepth(t *testing.T) {
	e := mustEngine(t, 100, 50)
	root, _ := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("root"))})
	mid, err := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("mid")), ParentID: root.ID, HasParent: true})
	if err != nil {
		t.Fatalf("Assemble(mid): %v", err)
	}
	leaf, err := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("leaf")), ParentID: mid.ID, HasParent: true})
	if err != nil {
		t.Fatalf("Assemble(leaf): %v", err)
	}

	chain, err := e.GetThoughtChain(leaf.ID, 0)
	if err != nil {
		t.Fatalf("GetThoughtChain(depth=0): %v", err)
	}
	if len(chain) != 1 || chain[0].ID != leaf.ID {
		t.Fatalf("GetThoughtChain(depth=0) = %+v, want [leaf]", chain)
	}

	chain, err = e.GetThoughtChain(leaf.ID, 1)
	if err != nil {
		t.Fatalf("GetThoughtChain(depth=1): %v", err)
	}
	if len(chain) != 2 || chain[0].ID != leaf.ID || chain[1].ID != mid.ID {
		t.Fatalf("GetThoughtChain(depth=1) = %+v, want [leaf, mid]", chain)
	}
}

func TestGetThoughtChainRejectsDepthBeyondMax(t *testing.T) {
	e := mustEngine(t, 100, 2)
	root, _ := e.Assemble(AssembleRequest{Content: domain.Raw([]byte("root"))})

	_, err := e.GetThoughtChain(root.ID, 3)
	var tooDeep *domain.ChainTooDeepError
	if !errors.As(err, &tooDeep) {
		t.Fatalf("GetThoughtChain(depth=max+1) = %v, want ChainTooDeepError", err)
	}
}

func TestGetThoughtNotFound(t *testing.T) {
	e := mustEngine(t, 100, 50)
	_, err := e.GetThought(domain.NewThoughtId())
	if _, ok := err.(*domain.ThoughtNotFoundError); !ok {
		t.Fatalf("GetThought(unknown) = %v, want ThoughtNotFoundError", err)
	}
}

func TestAssembleBatchStopsAtFirstErrorWithNoPartialResults(t *testing.T) {
	e := mustEngine(t, 100, 50)
	reqs := []AssembleRequest{
		{Content: domain.Raw([]byte("a"))},
		{Content: domain.Raw([]byte("b")), ParentID: domain.NewThoughtId(), HasParent: true}, // unknown parent
		{Content: domain.Raw([]byte("c"))},
	}
	thoughts, err := e.AssembleBatch(reqs)
	if _, ok := err.(*domain.ThoughtNotFoundError); !ok {
		t.Fatalf("AssembleBatch err = %v, want ThoughtNotFoundError", err)
	}
	if thoughts != nil {
		t.Fatalf("AssembleBatch thoughts = %+v, want nil on failure", thoughts)
	}
}

func TestAssembleBatchPreservesOrderOnSuccess(t *testing.T) {
	e := mustEngine(t, 100, 50)
	reqs := []AssembleRequest{
		{Content: domain.Raw([]byte("a"))},
		{Content: domain.Raw([]byte("b"))},
		{Content: domain.Raw([]byte("c"))},
	}
	thoughts, err := e.AssembleBatch(reqs)
	if err != nil {
		t.Fatalf("AssembleBatch: %v", err)
	}
	if len(thoughts) != 3 {
		t.Fatalf("len(thoughts) = %d, want 3", len(thoughts))
	}
	for i, content := range []string{"a", "b", "c"} {
		if got := thoughts[i].Content.Representation(); string(got) != content {
			t.Fatalf("thoughts[%d].Content = %q, want %q", i, got, content)
		}
	}
}
