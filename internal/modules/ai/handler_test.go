package ai

import (
	"testing"

	"github.com/mindlog/core/internal/models"
	"github.com/mindlog/core/internal/pkg/taskqueue"
)

func TestOwnsJournal(t *testing.T) {
	journal := &models.JournalModel{UserID: "user-a"}

	if !ownsJournal(journal, "user-a") {
		t.Error("owner should pass the check")
	}
	if ownsJournal(journal, "user-b") {
		t.Error("another user's entry must be refused, not returned")
	}
	if ownsJournal(nil, "user-a") || ownsJournal(journal, "") {
		t.Error("nil entry or missing user id must never pass")
	}
}

func TestOwnsQueueTask(t *testing.T) {
	task := &taskqueue.Task{ID: "t1", GroupKey: "user-a"}

	if !ownsQueueTask(task, "user-a") {
		t.Error("owner should have access to their own task")
	}
	if ownsQueueTask(task, "user-b") {
		t.Error("another user must not read or control the task")
	}
	if ownsQueueTask(task, "") {
		t.Error("missing user id must never grant access")
	}
	if ownsQueueTask(nil, "user-a") {
		t.Error("nil task must not grant access")
	}
	if ownsQueueTask(&taskqueue.Task{ID: "t2"}, "user-a") {
		t.Error("task without a group key must not be served to anyone")
	}
}
