package scoring

// Otomatik Düşünceler Ölçeği (ATQ-30): 30 items rated 1-5, five sub-scales
// of six items each. The total score runs over the whole instrument; the
// 50/70 cutoffs classify it.

// OtomatikDusuncelerDefinition returns the Automatic Thoughts Questionnaire.
func OtomatikDusuncelerDefinition() *InstrumentDefinition {
	return &InstrumentDefinition{
		Code:         OtomatikDusunceler,
		Name:         "Otomatik Düşünceler Ölçeği",
		ShortCode:    "ATQ",
		Description:  "Depresyona eşlik eden olumsuz otomatik düşüncelerin sıklığını ölçen 30 maddelik bir öz-bildirim ölçeğidir.",
		Instructions: "Aşağıda insanların akıllarından geçen bazı düşünceler sıralanmıştır. Lütfen her düşüncenin son bir hafta içinde aklınızdan ne sıklıkta geçtiğini işaretleyin.",
		TimeFrame:    "Son bir hafta",
		Questions:    otomatikQuestions(),
		Scales:       otomatikScales(),
		Cutoffs:      atqCutoffs,
	}
}

func otomatikScales() map[string]Scale {
	return map[string]Scale{
		"negatif_benlik": {
			Key:         "negatif_benlik",
			Name:        "Olumsuz Benlik Algısı",
			Description: "Kendini değersiz ve başarısız görme ile ilgili düşünceler",
			QuestionIDs: []int{2, 8, 17, 18, 23, 29},
		},
		"saskinlik_kacma": {
			Key:         "saskinlik_kacma",
			Name:        "Şaşkınlık ve Kaçma Fantezileri",
			Description: "Durumdan uzaklaşma ve kaçma isteğiyle ilgili düşünceler",
			QuestionIDs: []int{6, 12, 15, 19, 22, 26},
		},
		"kisisel_uyumsuzluk": {
			Key:         "kisisel_uyumsuzluk",
			Name:        "Kişisel Uyumsuzluk ve Değişme İsteği",
			Description: "Kendinde bir sorun olduğu ve değişmesi gerektiği düşünceleri",
			QuestionIDs: []int{3, 9, 14, 16, 20, 30},
		},
		"yalnizlik_izolasyon": {
			Key:         "yalnizlik_izolasyon",
			Name:        "Yalnızlık ve İzolasyon",
			Description: "Yalnızlık ve anlaşılmama ile ilgili düşünceler",
			QuestionIDs: []int{1, 4, 5, 10, 11, 21},
		},
		"umutsuzluk": {
			Key:         "umutsuzluk",
			Name:        "Umutsuzluk",
			Description: "Geleceğe ve kendi gücüne ilişkin umutsuz düşünceler",
			QuestionIDs: []int{7, 13, 24, 25, 27, 28},
		},
	}
}

var otomatikItems = []string{
	"Bütün dünya bana karşıymış gibi geliyor",
	"Değerli bir insan değilim",
	"Neden hiçbir şeyi başaramıyorum?",
	"Hiç kimse beni anlamıyor",
	"İnsanları hayal kırıklığına uğrattım",
	"Böyle devam edebileceğimi sanmıyorum",
	"Keşke daha iyi bir insan olsaydım",
	"Çok zayıf bir insanım",
	"Hayatım istediğim gibi gitmiyor",
	"Kendimi büyük bir hayal kırıklığına uğrattım",
	"Artık hiçbir şey bana zevk vermiyor",
	"Artık dayanamıyorum",
	"Bir şeylere başlayacak gücü kendimde bulamıyorum",
	"Benim neyim var?",
	"Keşke başka bir yerde olsaydım",
	"Hiçbir şeyi yoluna koyamıyorum",
	"Kendimden nefret ediyorum",
	"Değersiz bir insanım",
	"Keşke bir yerlere kaybolup gitsem",
	"Benim sorunum ne?",
	"Hep kaybeden ben miyim?",
	"Hayatım tam bir karmaşa içinde",
	"Tam bir başarısızlık örneğiyim",
	"Hiçbir zaman başaramayacağım",
	"Kendimi çok çaresiz hissediyorum",
	"Bir şeylerin değişmesi gerekli",
	"Bende bir bozukluk olmalı",
	"Geleceğim kasvetli",
	"Hiçbir şeye değmem",
	"Hiçbir işi sonuna kadar götüremiyorum",
}

func otomatikQuestions() []Question {
	questions := make([]Question, len(otomatikItems))
	for i, text := range otomatikItems {
		questions[i] = Question{
			ID:   i + 1,
			Text: text,
			Options: []QuestionOption{
				{Value: 1, Label: "Hiç"},
				{Value: 2, Label: "Nadiren"},
				{Value: 3, Label: "Bazen"},
				{Value: 4, Label: "Sıklıkla"},
				{Value: 5, Label: "Her zaman"},
			},
		}
	}
	return questions
}
