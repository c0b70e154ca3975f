/*
Package bustrace decodes sampled logic-analyzer captures of an 8008-style
CPU bus into a structured trace: symbolic bus states, bus cycles,
instruction fetch/execute events, and electrical anomalies (bus
contention, signal glitches).

The package is a pure library. It consumes an ordered slice of Samples
(see package capture for reading them from a capture file), runs a single
forward pass over it and returns plain data; rendering is left to package
report. A pass has no hidden state: running Analyze twice over the same
samples yields identical traces.

*/
package bustrace
