package state

import (
	"testing"

	"social/util/model"
)

func commentsPage(ids ...int64) []model.Comment {
	out := make([]model.Comment, len(ids))
	for i, id := range ids {
		out[i] = model.Comment{Id: id}
	}
	return out
}

func ids(list []model.Comment) []int64 {
	out := make([]int64, len(list))
	for i, c := range list {
		out[i] = c.Id
	}
	return out
}

func newCommentPager(size int) *Pager[int64, model.Comment] {
	return NewPager(size, func(c model.Comment) int64 { return c.Id })
}

func TestPager_MetaDrivenPaging(t *testing.T) {
	p := newCommentPager(2)

	req := p.Reset()
	if !p.Receive(req, commentsPage(1, 2), &model.Meta{Page: 1, TotalPages: 2}) {
		t.Fatalf("first page rejected")
	}
	if !p.HasMore() {
		t.Fatalf("expected more pages")
	}

	next, ok := p.Next()
	if !ok || next.Page != 2 {
		t.Fatalf("Next = %+v, %v", next, ok)
	}
	if _, ok := p.Next(); ok {
		t.Fatalf("Next while loading must be refused")
	}
	p.Receive(next, commentsPage(3, 4), &model.Meta{Page: 2, TotalPages: 2})

	if p.HasMore() {
		t.Fatalf("no more pages expected")
	}
	if _, ok := p.Next(); ok {
		t.Fatalf("Next after last page must be refused")
	}
	if got := ids(p.Items()); len(got) != 4 {
		t.Fatalf("items = %v", got)
	}
}

func TestPager_NeverDuplicatesLoadedPage(t *testing.T) {
	p := newCommentPager(2)
	first := p.Reset()
	p.Receive(first, commentsPage(1, 2), nil)

	second, _ := p.Next()
	if !p.Receive(second, commentsPage(3, 4), nil) {
		t.Fatalf("second page rejected")
	}
	// la misma respuesta llega dos veces (toques rápidos)
	if p.Receive(second, commentsPage(3, 4), nil) {
		t.Fatalf("duplicate response accepted")
	}
	if got := ids(p.Items()); len(got) != 4 {
		t.Fatalf("items duplicated: %v", got)
	}
}

func TestPager_DropsStaleGeneration(t *testing.T) {
	p := newCommentPager(2)
	first := p.Reset()
	p.Receive(first, commentsPage(1, 2), nil)

	stale, _ := p.Next()
	refresh := p.Reset()

	if p.Receive(stale, commentsPage(3, 4), nil) {
		t.Fatalf("response from before the refresh accepted")
	}
	p.Receive(refresh, commentsPage(9, 1), nil)
	got := ids(p.Items())
	if len(got) != 2 || got[0] != 9 || got[1] != 1 {
		t.Fatalf("items after refresh = %v", got)
	}
	if p.Page() != 1 {
		t.Fatalf("page = %d", p.Page())
	}
}

func TestPager_SkipsItemsAlreadyPresent(t *testing.T) {
	p := newCommentPager(3)
	first := p.Reset()
	p.Receive(first, commentsPage(5, 4, 3), nil)

	// un comentario nuevo desplaza la paginación del servidor
	p.Prepend(model.Comment{Id: 6})
	next, _ := p.Next()
	p.Receive(next, commentsPage(3, 2, 1), nil)

	got := ids(p.Items())
	want := []int64{6, 5, 4, 3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items = %v, want %v", got, want)
		}
	}
}

func TestPager_SizeHeuristic(t *testing.T) {
	p := newCommentPager(3)
	req := p.Reset()
	p.Receive(req, commentsPage(1, 2, 3), nil)
	if !p.HasMore() {
		t.Fatalf("a full page should allow more")
	}
	next, _ := p.Next()
	p.Receive(next, commentsPage(4), nil)
	if p.HasMore() {
		t.Fatalf("a short page ends the list")
	}
}

func TestPager_MetaWithoutTotalPagesStops(t *testing.T) {
	p := newCommentPager(3)
	req := p.Reset()
	p.Receive(req, commentsPage(1, 2, 3), &model.Meta{Page: 1})
	if p.HasMore() {
		t.Fatalf("meta without total_pages counts as a single page")
	}
}

func TestPager_FailAllowsRetry(t *testing.T) {
	p := newCommentPager(2)
	req := p.Reset()
	p.Fail(req)
	if p.Loading() {
		t.Fatalf("still loading after Fail")
	}
	retry, ok := p.Next()
	if !ok || retry.Page != 1 {
		t.Fatalf("retry = %+v, %v", retry, ok)
	}
}

func TestPager_MutationHelpers(t *testing.T) {
	p := newCommentPager(5)
	req := p.Reset()
	p.Receive(req, commentsPage(1, 2, 3), nil)

	if !p.Remove(2) || p.Remove(2) {
		t.Fatalf("Remove should succeed exactly once")
	}
	prev, ok := p.Update(3, func(c model.Comment) model.Comment { c.Body = "edited"; return c })
	if !ok || prev.Body != "" {
		t.Fatalf("Update = %+v, %v", prev, ok)
	}
	if c, _ := p.Get(3); c.Body != "edited" {
		t.Fatalf("Get(3) = %+v", c)
	}
	if !p.Replace(model.Comment{Id: 1, Body: "x"}) {
		t.Fatalf("Replace failed")
	}
	if p.Replace(model.Comment{Id: 99}) {
		t.Fatalf("Replace of a missing item succeeded")
	}
	if p.Len() != 2 {
		t.Fatalf("len = %d", p.Len())
	}
}
