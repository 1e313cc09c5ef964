package tailtip

import "testing"

func TestCacheVolatileRemovedAfterOneRead(t *testing.T) {
	c := NewCache()
	c.storeVolatile("cp", &CommandDescription{Name: "cp"})

	d, ok := c.lookup("cp")
	if !ok || d == nil || d.Name != "cp" {
		t.Fatalf("expected volatile hit, got d=%v ok=%v", d, ok)
	}

	d, ok = c.lookup("cp")
	if ok || d != nil {
		t.Fatalf("expected volatile entry consumed on first read, got d=%v ok=%v", d, ok)
	}
}

func TestCachePersistentReusedIndefinitely(t *testing.T) {
	c := NewCache()
	c.storePersistent("cp", &CommandDescription{Name: "cp"})

	for i := 0; i < 3; i++ {
		d, ok := c.lookup("cp")
		if !ok || d == nil || d.Name != "cp" {
			t.Fatalf("iteration %d: expected persistent hit, got d=%v ok=%v", i, d, ok)
		}
	}
}

func TestCacheTemporaryNullNotRecomputed(t *testing.T) {
	c := NewCache()
	calls := 0
	lookup := func() (*CommandDescription, bool) {
		if d, ok := c.lookup("missing"); ok {
			return d, d != nil
		}
		calls++
		c.storeTemporaryNull("missing")
		return nil, false
	}

	d, ok := lookup()
	if ok || d != nil {
		t.Fatalf("expected miss on first lookup")
	}
	d, ok = lookup()
	if ok || d != nil {
		t.Fatalf("expected miss on second lookup")
	}
	if calls != 1 {
		t.Fatalf("expected the resolver path to run exactly once, ran %d times", calls)
	}
}

func TestCacheClearTemporaryDropsNullSentinels(t *testing.T) {
	c := NewCache()
	c.storeTemporaryNull("missing")
	c.ClearTemporary()

	if _, ok := c.lookup("missing"); ok {
		t.Fatalf("expected ClearTemporary to drop the sentinel")
	}
}
