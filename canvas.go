package main

import "log"

// Canvas is the scene: an ordered list of objects where list order is draw
// order and the last object is the topmost.
type Canvas struct {
	objects []*Object
	byID    map[int]*Object
	counter int
}

func NewCanvas() *Canvas {
	return &Canvas{
		objects: make([]*Object, 0),
		byID:    make(map[int]*Object),
	}
}

// Objects returns the objects in draw order. Callers must not modify the
// returned slice.
func (c *Canvas) Objects() []*Object {
	return c.objects
}

func (c *Canvas) Len() int {
	return len(c.objects)
}

// Counter returns the last identifier handed out.
func (c *Canvas) Counter() int {
	return c.counter
}

func (c *Canvas) Find(id int) *Object {
	return c.byID[id]
}

// Add assigns the next identifier to obj and places it on top.
func (c *Canvas) Add(obj *Object) *Object {
	c.counter++
	obj.ID = c.counter
	c.objects = append(c.objects, obj)
	c.byID[obj.ID] = obj
	return obj
}

// Remove deletes every object matching the predicate together with the
// connectors that reference any of them, and returns what was removed.
func (c *Canvas) Remove(match func(*Object) bool) []*Object {
	removedIDs := make(map[int]bool)
	for _, obj := range c.objects {
		if match(obj) {
			removedIDs[obj.ID] = true
		}
	}
	if len(removedIDs) == 0 {
		return nil
	}

	var removed []*Object
	kept := make([]*Object, 0, len(c.objects))
	for _, obj := range c.objects {
		drop := removedIDs[obj.ID]
		if conn, ok := obj.Shape.(*ConnectorShape); ok {
			if removedIDs[conn.FromID] || removedIDs[conn.ToID] {
				drop = true
			}
		}
		if drop {
			removed = append(removed, obj)
			delete(c.byID, obj.ID)
			continue
		}
		kept = append(kept, obj)
	}
	c.objects = kept
	return removed
}

// replace swaps in a new object list, keeping identifiers as they are. The
// counter only ever moves forward so identifiers are never handed out twice.
func (c *Canvas) replace(objs []*Object) {
	for _, obj := range objs {
		if obj.ID > c.counter {
			c.counter = obj.ID
		}
	}

	c.objects = make([]*Object, 0, len(objs))
	c.byID = make(map[int]*Object, len(objs))
	for _, obj := range objs {
		if obj.ID <= 0 || c.byID[obj.ID] != nil {
			old := obj.ID
			c.counter++
			obj.ID = c.counter
			log.Printf("[load] duplicate or missing object id %d reassigned to %d", old, obj.ID)
		}
		c.objects = append(c.objects, obj)
		c.byID[obj.ID] = obj
	}
}
