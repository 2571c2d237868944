package content

import (
	"context"
	"time"

	"hikaya/api/internal/identity"
)

// seedStories builds the demo collection for a fresh install. It pulls
// the seeded demo users from the identity store so authorship points at
// real records; if those users are somehow missing the embedded
// fallback snapshots keep the stories readable.
func (s *Store) seedStories(ctx context.Context) ([]Story, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	pick := func(id, name string) identity.User {
		if user, ok := users[id]; ok {
			return user
		}
		return identity.User{ID: id, Name: name, Avatar: "https://i.pravatar.cc/150?u=" + id}
	}

	ali := pick("user-2", "علي حسن")
	fatima := pick("user-3", "فاطمة الزهراء")
	omar := pick("user-4", "عمر شريف")

	now := time.Now()

	return []Story{
		{
			ID:        "story-2",
			Title:     "نجمة السماء الحزينة",
			Content:   "كانت هناك نجمة صغيرة في السماء تشعر بالوحدة. كل النجوم الأخرى كانت تتلألأ بسعادة، لكنها كانت تشعر بأن لا أحد يلاحظها. في ليلة صافية، رآها طفل صغير من نافذة غرفته وقال لأمه: \"انظري يا أمي، تلك النجمة الصغيرة هي أجمل نجمة في السماء لأنها تذكرني بكِ، فريدة ومميزة\". سمعت النجمة كلام الطفل وشعرت بسعادة غامرة. ومنذ ذلك اليوم، أصبحت تتلألأ أكثر من أي نجمة أخرى، عالمة أن لكل شخص مكانه الخاص في هذا الكون.",
			Category:  Categories[5], // قصص أطفال
			Image:     "https://picsum.photos/seed/story-2/1200/600",
			Author:    fatima,
			CreatedAt: now.Add(-24 * time.Hour),
			Views:     289,
			Likes: []Like{
				{UserID: ali.ID, CreatedAt: now},
				{UserID: omar.ID, CreatedAt: now},
			},
			Comments: []Comment{
				{ID: "comment-2", Text: "قصة جميلة جداً، أثرت فيّ.", User: ali, CreatedAt: now},
				{ID: "comment-3", Text: "أحببت الفكرة!", User: omar, CreatedAt: now},
			},
		},
		{
			ID:        "story-1",
			Title:     "التاجر الأمين والثعلب الماكر",
			Content:   "في قديم الزمان، كان هناك تاجر أمين يُدعى \"سعيد\". كان سعيد يسافر بين المدن لبيع بضاعته. في إحدى رحلاته عبر الغابة، التقى بثعلب ماكر عرض عليه المساعدة في حمل بضاعته مقابل جزء صغير منها. وافق سعيد، لكن الثعلب كان يخطط لسرقة كل شيء. لاحظ سعيد ذكاء الثعلب وشك في نواياه. وعندما وصلوا إلى النهر، طلب سعيد من الثعلب أن يعبر أولاً ليختبر عمق المياه. عندما دخل الثعلب، دفعه سعيد بخفة إلى منتصف النهر وقال: \"هذا جزاء الطمع!\". تعلم الثعلب درساً قاسياً، وأكمل سعيد رحلته بسلام.",
			Category:  Categories[8], // أخلاقية
			Image:     "https://picsum.photos/seed/story-1/1200/600",
			Author:    ali,
			CreatedAt: now.Add(-48 * time.Hour),
			Views:     152,
			Likes: []Like{
				{UserID: fatima.ID, CreatedAt: now},
				{UserID: omar.ID, CreatedAt: now},
			},
			Comments: []Comment{
				{ID: "comment-1", Text: "قصة رائعة ومعبرة!", User: fatima, CreatedAt: now},
			},
		},
	}, nil
}
