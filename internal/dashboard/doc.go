// Package dashboard wires the marine DNA classification dashboard: fixture
// datasets, visualization views and their exports, simulated FASTA uploads,
// the looping pipeline indicator, per-session chat and contributions.
package dashboard
