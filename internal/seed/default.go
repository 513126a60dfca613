package seed

import (
	"time"

	"clubroster/internal/model"
	"clubroster/internal/store"
)

// Default returns the built-in sample club: three positions, three hobbies and
// three members.
func Default() store.Seed {
	tags := []model.Tag{
		{ID: "1", Name: "部長", Category: model.CategoryPosition, Color: "#1976d2"},
		{ID: "2", Name: "副部長", Category: model.CategoryPosition, Color: "#388e3c"},
		{ID: "3", Name: "会計", Category: model.CategoryPosition, Color: "#d32f2f"},
		{ID: "4", Name: "ゲーム", Category: model.CategoryHobby, Color: "#f57c00"},
		{ID: "5", Name: "アニメ", Category: model.CategoryHobby, Color: "#7b1fa2"},
		{ID: "6", Name: "音楽", Category: model.CategoryHobby, Color: "#00796b"},
	}
	day := func(d int) time.Time { return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC) }

	return store.Seed{
		Tags: tags,
		Members: []model.Member{
			{
				ID:           "1",
				Name:         "山田太郎",
				Avatar:       "https://i.pravatar.cc/150?img=1",
				Introduction: "部長を務めています。趣味はゲームと音楽です。みんなで楽しいサークルにしていきましょう！",
				Tags:         []model.Tag{tags[0], tags[3], tags[5]},
				IsEditable:   true,
				CreatedAt:    day(1),
			},
			{
				ID:           "2",
				Name:         "佐藤花子",
				Avatar:       "https://i.pravatar.cc/150?img=5",
				Introduction: "副部長の佐藤です。アニメと音楽が大好きです。イベントの企画なども担当しています。",
				Tags:         []model.Tag{tags[1], tags[4], tags[5]},
				IsEditable:   true,
				CreatedAt:    day(2),
			},
			{
				ID:           "3",
				Name:         "鈴木一郎",
				Avatar:       "https://i.pravatar.cc/150?img=3",
				Introduction: "会計担当の鈴木です。部費の管理をしています。趣味はゲームです。",
				Tags:         []model.Tag{tags[2], tags[3]},
				IsEditable:   true,
				CreatedAt:    day(3),
			},
		},
	}
}
