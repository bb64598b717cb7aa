/*
Package ports defines the interfaces through which hosts drive and observe
a running simulation.

These interfaces decouple presentation (terminal view, HTTP sessions, NDJSON
streams) from the execution engine: a host paces execution through the
Stepper surface and renders from the read-only Inspector surface, never
touching engine internals.

# Key Interfaces

  - Stepper: advances, interrupts and rewinds a simulation.
  - Inspector: read-only access to machine state, head, tape and transition.
  - Simulation: the full host-facing surface (Stepper + Inspector).
*/
package ports
