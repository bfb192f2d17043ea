// Package boxes implements the shipment box lifecycle: boxes fill with
// approved piece IDs up to a fixed capacity, close the instant they reach it,
// and a fresh open box is started in the same operation. A closed box never
// reopens — removal of a piece from a closed box lowers its count but the
// seal is a one-way record that the box was once completed.
package boxes
