// Package submitborrowrequest implements the Submit Borrow Request use case.
//
// A member asks to borrow a book. The request starts PENDING and does not reserve a copy yet,
// copies are only taken by an approval. The consistency boundary is everything that happened to the book,
// so two members can both submit for the last copy while a later approval still sees the other one.
package submitborrowrequest
