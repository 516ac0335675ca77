package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	repository "github.com/okian/skillbudget/internal/adapters/repository"
	"github.com/okian/skillbudget/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func seed(ctx context.Context, s *repository.CatalogStore) {
	g0 := s.NextGroupID()
	g1 := s.NextGroupID()
	g2 := s.NextGroupID()
	s.Append(ctx,
		model.Skill{Type: model.Yellow, Name: "Corner Adept", Variant: model.Base, RatingBase: 50, GroupID: g0},
		model.Skill{Type: model.Yellow, Name: "Professor of Curvature", Variant: model.Gold, RatingBase: 90, GroupID: g0},
		model.Skill{Type: model.Green, Name: "Right-Handed", Variant: model.Base, RatingBase: 30, GroupID: g1},
		model.Skill{Type: model.Purple, Name: "Gatekept", Variant: model.Base, RatingBase: 20, GroupID: g2},
	)
}

func TestCatalogStore_AppendAndRead(t *testing.T) {
	Convey("Given a seeded catalog", t, func() {
		ctx := context.Background()
		s := repository.NewCatalogStore(ctx)
		seed(ctx, s)

		Convey("Then records keep insertion order and indexes", func() {
			snap := s.Snapshot(ctx)
			So(len(snap), ShouldEqual, 4)
			for i, sk := range snap {
				So(sk.Index, ShouldEqual, i)
			}
			So(s.Count(ctx), ShouldEqual, 4)
			So(s.Groups(), ShouldEqual, 3)
			So(s.CountByType(ctx)[model.Yellow], ShouldEqual, 2)
		})

		Convey("Then group ids are handed out monotonically", func() {
			So(s.NextGroupID(), ShouldEqual, 3)
			So(s.NextGroupID(), ShouldEqual, 4)
		})

		Convey("Then snapshots are copies", func() {
			snap := s.Snapshot(ctx)
			snap[0].SPCost = 999
			got, err := s.Get(ctx, 0)
			So(err, ShouldBeNil)
			So(got.SPCost, ShouldEqual, 0)
		})

		Convey("Then out of range reads fail with ErrNotFound", func() {
			_, err := s.Get(ctx, 99)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestCatalogStore_Edits(t *testing.T) {
	Convey("Given a seeded catalog", t, func() {
		ctx := context.Background()
		s := repository.NewCatalogStore(ctx)
		seed(ctx, s)

		Convey("When setting a cost", func() {
			sk, err := s.SetCost(ctx, 1, 180)
			So(err, ShouldBeNil)
			So(sk.SPCost, ShouldEqual, 180)

			Convey("Then negative costs are rejected", func() {
				_, err := s.SetCost(ctx, 1, -1)
				So(errors.Is(err, repository.ErrInvalidCost), ShouldBeTrue)
				got, _ := s.Get(ctx, 1)
				So(got.SPCost, ShouldEqual, 180)
			})

			Convey("Then penalty skills cannot be costed", func() {
				_, err := s.SetCost(ctx, 3, 10)
				So(errors.Is(err, repository.ErrNotPurchasable), ShouldBeTrue)
			})
		})

		Convey("When toggling", func() {
			sk, err := s.SetEnabled(ctx, 3, true)
			So(err, ShouldBeNil)
			So(sk.Enabled, ShouldBeTrue)

			_, err = s.SetEnabled(ctx, 0, true)
			So(errors.Is(err, repository.ErrNotPenalty), ShouldBeTrue)
		})

		Convey("When resetting twice", func() {
			_, _ = s.SetCost(ctx, 0, 100)
			_, _ = s.SetCost(ctx, 2, 50)
			_, _ = s.SetEnabled(ctx, 3, true)

			s.ResetSkills(ctx)
			once := s.Snapshot(ctx)
			s.ResetSkills(ctx)
			twice := s.Snapshot(ctx)

			Convey("Then the state is cleared and identical", func() {
				So(twice, ShouldResemble, once)
				for _, sk := range twice {
					So(sk.SPCost, ShouldEqual, 0)
					So(sk.Enabled, ShouldBeFalse)
				}
				So(len(twice), ShouldEqual, 4)
			})
		})
	})
}

func TestCatalogStore_FindByName(t *testing.T) {
	Convey("Given a seeded catalog", t, func() {
		ctx := context.Background()
		s := repository.NewCatalogStore(ctx, repository.WithSuggestionLimit(2))
		seed(ctx, s)

		Convey("When looking up an exact name in another case", func() {
			sk, err := s.FindByName(ctx, "corner adept", "")
			So(err, ShouldBeNil)
			So(sk.Index, ShouldEqual, 0)
		})

		Convey("When the variant does not match", func() {
			_, err := s.FindByName(ctx, "Corner Adept", model.Gold)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the name is misspelled", func() {
			_, err := s.FindByName(ctx, "Corner Adapt", "")

			Convey("Then the error suggests the close match", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				var nf *repository.NotFoundError
				So(errors.As(err, &nf), ShouldBeTrue)
				So(nf.Suggestions, ShouldResemble, []string{"Corner Adept"})
				So(err.Error(), ShouldContainSubstring, "did you mean")
			})
		})

		Convey("When two records share a name", func() {
			g := s.NextGroupID()
			s.Append(ctx, model.Skill{Type: model.Inherit, Name: "Right-Handed", Variant: model.Base, GroupID: g})
			_, err := s.FindByName(ctx, "Right-Handed", "")
			So(errors.Is(err, repository.ErrAmbiguous), ShouldBeTrue)
		})

		Convey("Then substring matches are suggested too", func() {
			So(s.Suggest(ctx, "curvature"), ShouldResemble, []string{"Professor of Curvature"})
			So(s.Suggest(ctx, " "), ShouldBeEmpty)
		})
	})
}

func TestCatalogStore_ConcurrentAppend(t *testing.T) {
	Convey("Given concurrent appenders", t, func() {
		ctx := context.Background()
		s := repository.NewCatalogStore(ctx)

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					g := s.NextGroupID()
					s.Append(ctx,
						model.Skill{Type: model.Blue, Name: "b", GroupID: g},
						model.Skill{Type: model.Blue, Name: "g", Variant: model.Gold, GroupID: g},
					)
				}
			}()
		}
		wg.Wait()

		Convey("Then every record and group id is unique", func() {
			snap := s.Snapshot(ctx)
			So(len(snap), ShouldEqual, 800)
			So(s.Groups(), ShouldEqual, 400)
			perGroup := map[int64]int{}
			for i, sk := range snap {
				So(sk.Index, ShouldEqual, i)
				perGroup[sk.GroupID]++
			}
			So(len(perGroup), ShouldEqual, 400)
			for _, n := range perGroup {
				So(n, ShouldEqual, 2)
			}
		})
	})
}
