package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	kvTableName          = "kv"
	sequenceTableName    = "global_sequence"
	answerEventsTable    = "answer_events"
	sessionEventsTable   = "session_events"
	hintEventsTable      = "hint_events"
	llmRequestEventTable = "llm_request_events"
)

// Tables declared in the same shape entc emits into migrate/schema.go, so
// the ent migrator can create and evolve them.
var (
	kvColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeTime},
	}
	kvTable = &schema.Table{
		Name:       kvTableName,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       sequenceTableName,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	answerEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "puzzle_id", Type: field.TypeString},
		&schema.Column{Name: "tier", Type: field.TypeString},
		&schema.Column{Name: "question", Type: field.TypeString},
		&schema.Column{Name: "chosen", Type: field.TypeInt},
		&schema.Column{Name: "correct_answer", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "score_after", Type: field.TypeInt},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64},
	)
	answerEvents = eventTable(answerEventsTable, answerEventsColumns)

	sessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "tier", Type: field.TypeString},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "incorrect_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "high_score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	sessionEvents = eventTable(sessionEventsTable, sessionEventsColumns)

	hintEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "puzzle_id", Type: field.TypeString},
		&schema.Column{Name: "question", Type: field.TypeString},
		&schema.Column{Name: "hint", Type: field.TypeString},
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
	)
	hintEvents = eventTable(hintEventsTable, hintEventsColumns)

	llmRequestColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "request_body", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "response_body", Type: field.TypeString, Nullable: true},
	)
	llmRequestEvents = eventTable(llmRequestEventTable, llmRequestColumns)

	// Tables holds every table the store manages.
	Tables = []*schema.Table{
		kvTable,
		sequenceTable,
		answerEvents,
		sessionEvents,
		hintEvents,
		llmRequestEvents,
	}
)

// eventColumns prepends the columns shared by every event table: an
// auto-increment id, the global sequence and the creation timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	cols := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(cols, extra...)
}

func eventTable(name string, cols []*schema.Column) *schema.Table {
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
}
