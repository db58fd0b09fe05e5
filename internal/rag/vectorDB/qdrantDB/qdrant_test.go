package qdrantDB

import (
	"context"
	"testing"
)

func TestDeleteByDocument_RejectsEmptyId(t *testing.T) {
	// Must fail before any backend call, an empty id matches every point.
	db := &ClientHolder{}
	if err := db.DeleteByDocument(context.Background(), ""); err == nil {
		t.Fatal("expected an error for an empty document id")
	}
}

func TestPointID_Deterministic(t *testing.T) {
	if pointID("book-1_chunk_0") != pointID("book-1_chunk_0") {
		t.Error("same entry id must map to the same point id")
	}
	if pointID("book-1_chunk_0") == pointID("book-1_chunk_1") {
		t.Error("different entry ids must map to different point ids")
	}
}
