package cache

import (
	"fmt"
	"html/template"
	"sync"
	"testing"
)

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		cache.Set("key", "value")

		got, exists := cache.Get("key")
		if !exists {
			t.Fatal("Expected key to exist")
		}
		if got != "value" {
			t.Errorf("Expected %q, got %q", "value", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, exists := cache.Get("non-existent"); exists {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		cache.Set("gone", "soon")
		cache.Delete("gone")
		if _, exists := cache.Get("gone"); exists {
			t.Error("Expected key to be deleted")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		cache.Set("a", "1")
		cache.Clear()
		if cache.Len() != 0 {
			t.Errorf("Expected empty cache, got %d items", cache.Len())
		}
	})
}

func TestCache_DeleteFunc(t *testing.T) {
	cache := NewCache[string, int]()
	for i := 0; i < 10; i++ {
		cache.Set(fmt.Sprint(i), i)
	}

	removed := cache.DeleteFunc(func(_ string, v int) bool { return v%2 == 0 })
	if removed != 5 {
		t.Errorf("Expected 5 removed entries, got %d", removed)
	}
	if cache.Len() != 5 {
		t.Errorf("Expected 5 remaining entries, got %d", cache.Len())
	}
	if _, ok := cache.Get("4"); ok {
		t.Error("Expected even key to be removed")
	}
	if _, ok := cache.Get("5"); !ok {
		t.Error("Expected odd key to remain")
	}
}

func TestCache_Concurrency(t *testing.T) {
	cache := NewCache[int, int]()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				cache.Set(w*100+i, i)
				cache.Get(i)
			}
			cache.DeleteFunc(func(k, _ int) bool { return k == w*100 })
		}(w)
	}
	wg.Wait()

	if cache.Len() != 8*99 {
		t.Errorf("Expected %d entries, got %d", 8*99, cache.Len())
	}
}

func TestStaticAndSyntaxCaches(t *testing.T) {
	SetStaticHash("/static/site.css", "abc")
	if h, ok := GetStaticHash("/static/site.css"); !ok || h != "abc" {
		t.Errorf("Expected static hash 'abc', got %q (ok=%v)", h, ok)
	}

	SetSyntaxCSS("gruvbox", template.CSS(".chroma{}"))
	if css, ok := GetSyntaxCSS("gruvbox"); !ok || css != ".chroma{}" {
		t.Errorf("Expected cached CSS, got %q (ok=%v)", css, ok)
	}
}
