package domain

// ResourceKind distinguishes the two independent scheduling axes
type ResourceKind string

const (
	// ResourcePost физическое рабочее место (пост/бокс), вместимость ровно 1
	ResourcePost ResourceKind = "post"
	// ResourceMaster сотрудник - вторая независимая ось планирования
	ResourceMaster ResourceKind = "master"
)

// Resource is a bookable resource from the company registry.
// The engine only reads resources; they are created and edited elsewhere.
type Resource struct {
	ID     int64
	Kind   ResourceKind
	Name   string
	Active bool
}

// ResourceSnapshot is a read-only view of the registry taken by the caller
// before a scheduling decision. The engine owns no cached state of its own.
type ResourceSnapshot struct {
	Posts   []Resource
	Masters []Resource
}

// ActivePosts returns active posts only
func (s ResourceSnapshot) ActivePosts() []Resource {
	return filterActive(s.Posts)
}

// ActiveMasters returns active masters only
func (s ResourceSnapshot) ActiveMasters() []Resource {
	return filterActive(s.Masters)
}

// HasPost reports whether an active post with the given id exists in the snapshot
func (s ResourceSnapshot) HasPost(id int64) bool {
	return containsActive(s.Posts, id)
}

// HasMaster reports whether an active master with the given id exists in the snapshot
func (s ResourceSnapshot) HasMaster(id int64) bool {
	return containsActive(s.Masters, id)
}

func filterActive(resources []Resource) []Resource {
	active := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if r.Active {
			active = append(active, r)
		}
	}
	return active
}

func containsActive(resources []Resource, id int64) bool {
	for _, r := range resources {
		if r.ID == id && r.Active {
			return true
		}
	}
	return false
}
