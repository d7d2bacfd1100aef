// Package session tracks one Micattix game across rounds: who plays, whose
// turn it is, what each player has captured this round and what they have
// accumulated overall. It delegates board legality to the engine package and
// adds the scoring, turn-rotation and round-lifecycle rules on top.
package session
