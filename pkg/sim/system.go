package sim

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-thermosim/pkg/logging"
	"github.com/dd0wney/cluso-thermosim/pkg/metrics"
)

// Config holds the solver tolerances and the iteration cap.
type Config struct {
	StopCriterionEnergy   float64
	StopCriterionMomentum float64
	StopCriterionMass     float64
	StopCriterionSignal   float64
	MaxIterations         int
}

// DefaultConfig returns the default tolerances
func DefaultConfig() Config {
	return Config{
		StopCriterionEnergy:   1.0,
		StopCriterionMomentum: 1.0,
		StopCriterionMass:     0.001,
		StopCriterionSignal:   0.001,
		MaxIterations:         1000,
	}
}

// System is the simulation graph: registered models and blocks, their ports,
// and the directed edges the solver propagates along. Topology is mutated
// only during setup; Solve mutates port payloads exclusively.
type System struct {
	graph    *graph
	payloads []*Port // port payload per graph handle, nil for model/block nodes

	models []Model
	blocks []Block
	byName map[string]simNode
	ports  map[string]*Port

	connections int

	cfg     Config
	log     logging.Logger
	metrics *metrics.Registry
	strict  bool

	iteration int
	last      *SystemResult
}

// Option configures a System at construction time
type Option func(*System)

// WithConfig sets the solver tolerances and iteration cap
func WithConfig(cfg Config) Option {
	return func(s *System) { s.cfg = cfg }
}

// WithLogger sets the diagnostics sink
func WithLogger(log logging.Logger) Option {
	return func(s *System) { s.log = log }
}

// WithMetrics attaches a metrics registry
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *System) { s.metrics = reg }
}

// WithStrict turns non-fatal invariant violations (media-type mismatch in
// balances, failing self-checks) into hard solve errors.
func WithStrict(strict bool) Option {
	return func(s *System) { s.strict = strict }
}

// NewSystem creates an empty system with default configuration
func NewSystem(opts ...Option) *System {
	s := &System{
		graph:  newGraph(),
		byName: make(map[string]simNode),
		ports:  make(map[string]*Port),
		cfg:    DefaultConfig(),
		log:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the solver configuration
func (s *System) Config() Config { return s.cfg }

// Models returns the registered models in registration order
func (s *System) Models() []Model { return s.models }

// Blocks returns the registered blocks in registration order
func (s *System) Blocks() []Block { return s.blocks }

// Port resolves a globally unique port name
func (s *System) Port(name string) (*Port, bool) {
	p, ok := s.ports[name]
	return p, ok
}

// LastResult returns the result of the most recent solve run, nil before the
// first
func (s *System) LastResult() *SystemResult { return s.last }

// AddModel registers a model and inserts its ports into the graph. The
// insertion is transactional: on any name collision the graph is left
// exactly as it was.
func (s *System) AddModel(m Model) error {
	if err := s.register("AddModel", m, kindModel); err != nil {
		return err
	}
	s.models = append(s.models, m)
	s.updateGraphMetrics()
	s.log.Debug("model registered", logging.Model(m.Name()), logging.Int("ports", len(m.Ports())))
	return nil
}

// AddBlock registers a block and inserts its ports into the graph
func (s *System) AddBlock(b Block) error {
	if err := s.register("AddBlock", b, kindBlock); err != nil {
		return err
	}
	s.blocks = append(s.blocks, b)
	s.updateGraphMetrics()
	s.log.Debug("block registered", logging.Block(b.Name()), logging.Int("ports", len(b.Ports())))
	return nil
}

func (s *System) register(op string, node simNode, kind nodeKind) error {
	checkpoint := s.graph.nodeCount()

	rollback := func() {
		s.graph.removeLast(checkpoint)
		s.payloads = s.payloads[:checkpoint]
	}

	owner, err := s.graph.addNode(node.Name(), kind)
	if err != nil {
		return &SimError{Op: op, Node: node.Name(), Cause: ErrDuplicateName}
	}
	s.payloads = append(s.payloads, nil)

	for _, port := range node.Ports() {
		handle, err := s.graph.addNode(port.Name(), kindPort)
		if err != nil {
			rollback()
			return &SimError{Op: op, Node: node.Name(), Port: port.Name(), Cause: ErrDuplicateName}
		}
		s.payloads = append(s.payloads, port)

		// Containment edges per the port's directional role
		if port.Type().IsInlet() {
			s.graph.addEdge(handle, owner)
		}
		if port.Type().IsOutlet() {
			s.graph.addEdge(owner, handle)
		}
	}

	s.byName[node.Name()] = node
	for _, port := range node.Ports() {
		s.ports[port.Name()] = port
	}
	return nil
}

// Connect adds a directed propagation edge from an outlet-like port to an
// inlet-like port of the same payload kind. Incompatible connections fail
// and leave the graph untouched.
func (s *System) Connect(from, to string) error {
	src, ok := s.ports[from]
	if !ok {
		return &SimError{Op: "Connect", Port: from, Cause: ErrUnknownPort}
	}
	dst, ok := s.ports[to]
	if !ok {
		return &SimError{Op: "Connect", Port: to, Cause: ErrUnknownPort}
	}
	if !src.compatibleWith(dst) {
		return &SimError{Op: "Connect", Port: from, Cause: ErrPortIncompatible,
			Context: src.Type().String() + " -> " + dst.Type().String() + " (" + to + ")"}
	}

	srcHandle, _ := s.graph.lookup(from)
	dstHandle, _ := s.graph.lookup(to)
	s.graph.addEdge(srcHandle, dstHandle)
	s.connections++
	s.updateGraphMetrics()
	s.log.Debug("ports connected", logging.String("from", from), logging.String("to", to))
	return nil
}

// CheckSelf runs every registered component's self-check. Failures are
// logged as structural warnings; the overall verdict is returned but nothing
// raises.
func (s *System) CheckSelf() bool {
	ok := true
	for _, m := range s.models {
		if !m.CheckSelf() {
			s.log.Warn("model failed self-check", logging.Model(m.Name()))
			ok = false
		}
	}
	for _, b := range s.blocks {
		if !b.CheckSelf() {
			s.log.Warn("block failed self-check", logging.Block(b.Name()))
			ok = false
		}
	}
	return ok
}

// NodeResults snapshots every registered component. Either map is nil when
// no components of that kind are registered.
func (s *System) NodeResults() (map[string]ModelResult, map[string]BlockResult) {
	var modelResults map[string]ModelResult
	var blockResults map[string]BlockResult

	if len(s.models) > 0 {
		modelResults = make(map[string]ModelResult, len(s.models))
		for _, m := range s.models {
			r := m.Results()
			r.Kind = nodeTypeName(m)
			modelResults[m.Name()] = r
		}
	}
	if len(s.blocks) > 0 {
		blockResults = make(map[string]BlockResult, len(s.blocks))
		for _, b := range s.blocks {
			r := b.Results()
			r.Kind = nodeTypeName(b)
			blockResults[b.Name()] = r
		}
	}
	return modelResults, blockResults
}

// TopologyEdge is a component-level connection derived from port wiring
type TopologyEdge struct {
	From string
	To   string
}

// Topology returns the registered component names in registration order and
// the component-to-component connections implied by the port wiring. Ports
// themselves do not appear; a connection between two ports becomes an edge
// between their owners.
func (s *System) Topology() ([]string, []TopologyEdge) {
	names := make([]string, 0, len(s.models)+len(s.blocks))
	for _, m := range s.models {
		names = append(names, m.Name())
	}
	for _, b := range s.blocks {
		names = append(names, b.Name())
	}

	var edges []TopologyEdge
	seen := make(map[TopologyEdge]bool)
	for h := int32(0); h < int32(s.graph.nodeCount()); h++ {
		if s.graph.kind(h) != kindPort {
			continue
		}
		for _, succ := range s.graph.successors(h) {
			if s.graph.kind(succ) != kindPort {
				continue
			}
			from, okFrom := s.portOwner(h)
			to, okTo := s.portOwner(succ)
			if !okFrom || !okTo || from == to {
				continue
			}
			e := TopologyEdge{From: from, To: to}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return names, edges
}

// portOwner resolves the component a port handle belongs to via its
// containment edges.
func (s *System) portOwner(h int32) (string, bool) {
	for _, pred := range s.graph.predecessors(h) {
		if s.graph.kind(pred) != kindPort {
			return s.graph.names[pred], true
		}
	}
	for _, succ := range s.graph.successors(h) {
		if s.graph.kind(succ) != kindPort {
			return s.graph.names[succ], true
		}
	}
	return "", false
}

// nodeTypeName reduces a concrete component type to its bare name,
// e.g. *fluid.PumpSimple becomes PumpSimple.
func nodeTypeName(v any) string {
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (s *System) updateGraphMetrics() {
	s.metrics.UpdateGraphMetrics(len(s.models), len(s.blocks), len(s.ports), s.connections)
}
