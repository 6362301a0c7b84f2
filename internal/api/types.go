package api

// Run status values as reported by the backend. Status is computed
// server-side and is never re-derived from Results on the client.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Well-known artifact kinds. The kind set is open; these are the two the
// client offers quick access to.
const (
	ArtifactKindJUnit        = "junit"
	ArtifactKindWorkflowJSON = "workflow_json"
)

// WorkflowNode is one step of a planned workflow contract.
type WorkflowNode struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// WorkflowEdge links two contract nodes by id.
type WorkflowEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// WorkflowContract is the planner's output for a goal. The id is the only
// field the client depends on; the rest is display material.
type WorkflowContract struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Nodes           []WorkflowNode `json:"nodes"`
	Edges           []WorkflowEdge `json:"edges"`
	TestWebhookPath string         `json:"test_webhook_path"`
	ProdWebhookPath string         `json:"prod_webhook_path"`
}

// HTTPFixture is one canned request the executor replays against the workflow.
type HTTPFixture struct {
	Method string         `json:"method"`
	Path   string         `json:"path"`
	Body   map[string]any `json:"body,omitempty"`
}

// FixturePack groups the fixtures generated for a contract.
type FixturePack struct {
	ID                 string        `json:"id"`
	WorkflowContractID string        `json:"workflow_contract_id"`
	Fixtures           []HTTPFixture `json:"fixtures"`
}

// Assertion is one check the executor evaluates against the run trace.
type Assertion struct {
	ID          string         `json:"id"`
	Operator    string         `json:"operator"`
	Args        map[string]any `json:"args,omitempty"`
	Description string         `json:"description,omitempty"`
}

// AssertionPack groups the assertions generated for a contract.
type AssertionPack struct {
	ID                 string      `json:"id"`
	WorkflowContractID string      `json:"workflow_contract_id"`
	Assertions         []Assertion `json:"assertions"`
}

// AssertionResult is the executor's verdict for a single assertion.
type AssertionResult struct {
	AssertionID string `json:"assertion_id"`
	Operator    string `json:"operator"`
	Passed      bool   `json:"passed"`
	Message     string `json:"message"`
}

// N8NMeta carries the execution-mode-specific fields a real n8n run reports.
// Mock runs have no meta; the pointer is nil.
type N8NMeta struct {
	WorkflowID          string           `json:"workflowId,omitempty"`
	WebhookTestURL      string           `json:"webhookTestUrl,omitempty"`
	WebhookProdURL      string           `json:"webhookProdUrl,omitempty"`
	ExecutionLogFirst20 []map[string]any `json:"executionLogFirst20,omitempty"`
	N8NError            string           `json:"n8nError,omitempty"`
}

// Run is one execution attempt of a design's test.
type Run struct {
	ID                 string            `json:"id"`
	WorkflowContractID string            `json:"workflow_contract_id"`
	Status             string            `json:"status"`
	Results            []AssertionResult `json:"results"`
	JUnitPath          string            `json:"junit_path,omitempty"`
	Meta               *N8NMeta          `json:"meta,omitempty"`
}

// Artifact is a downloadable byproduct of a run.
type Artifact struct {
	ID    string `json:"id"`
	RunID string `json:"run_id"`
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	URL   string `json:"url,omitempty"`
}

// GraphNode is one node of the generated n8n workflow, as the instance
// reports it. Position is the editor coordinate pair and may be missing.
type GraphNode struct {
	Name     string    `json:"name"`
	Position []float64 `json:"position"`
}

// GraphTarget references a connection endpoint by node name. Names are not
// guaranteed to resolve to a node in the same descriptor.
type GraphTarget struct {
	Node string `json:"node"`
}

// WorkflowGraph is the n8n connection descriptor: source node name ->
// output port -> ordered branches -> ordered targets.
type WorkflowGraph struct {
	Nodes       []GraphNode                          `json:"nodes"`
	Connections map[string]map[string][][]GraphTarget `json:"connections"`
}

// ConnectionRef is what the client retains after saving an n8n credential.
// The api_key itself is write-only and never comes back.
type ConnectionRef struct {
	ID        string `json:"id"`
	Persisted bool   `json:"persisted"`
}

// ConnectionInput is the one-shot credential payload for SaveConnection.
type ConnectionInput struct {
	BaseURL  string `json:"base_url"  validate:"required,url"`
	APIKey   string `json:"api_key"   validate:"required"`
	Remember bool   `json:"remember"`
}

// DesignResponse bundles the planner's three outputs.
type DesignResponse struct {
	WorkflowContract WorkflowContract `json:"workflowContract"`
	FixturePack      FixturePack      `json:"fixturePack"`
	AssertionPack    AssertionPack    `json:"assertionPack"`
}
