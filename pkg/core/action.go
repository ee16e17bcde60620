package core

// ActionKind tags the mutation an Action requests.
type ActionKind string

const (
	ActionCreate ActionKind = "CREATE"
	ActionUpdate ActionKind = "UPDATE"
	ActionDelete ActionKind = "DELETE"
)

// Action is a tagged payload describing one requested mutation.
// CREATE and UPDATE carry a full Entry; DELETE carries only ID.
type Action struct {
	Kind  ActionKind
	Entry Entry
	ID    ID
}

// CreateAction builds a CREATE action. The entry id must already be allocated.
func CreateAction(e Entry) Action {
	return Action{Kind: ActionCreate, Entry: e}
}

// UpdateAction builds an UPDATE action replacing the whole record.
func UpdateAction(e Entry) Action {
	return Action{Kind: ActionUpdate, Entry: e}
}

// DeleteAction builds a DELETE action.
func DeleteAction(id ID) Action {
	return Action{Kind: ActionDelete, ID: id}
}

// target returns the id the action refers to.
func (a Action) target() ID {
	if a.Kind == ActionDelete {
		return a.ID
	}
	return a.Entry.ID
}

// Operations is the write surface handed to consumers.
// None of the operations report success or failure: an update or delete that
// matches nothing is a silent no-op.
type Operations interface {
	// Create allocates a new id and prepends the entry.
	Create(createdDate int64, emotionID int, content string)

	// Update replaces the entry with the given id. All fields must be supplied.
	Update(id ID, createdDate int64, emotionID int, content string)

	// Delete removes the entry with the given id.
	Delete(id ID)
}

// StateSource is the read surface handed to consumers.
type StateSource interface {
	Snapshot() Snapshot
}
