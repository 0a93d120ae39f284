package scoring

// Beck inventories: 21 items each, options scored 0-3, severity from the
// published Turkish adaptation cutoffs.

var beckDepressionCutoffs = []Cutoff{
	{Upper: 9, Label: "Minimal"},
	{Upper: 16, Label: "Hafif"},
	{Upper: 29, Label: "Orta"},
	{Upper: 63, Label: "Şiddetli"},
}

var beckAnxietyCutoffs = []Cutoff{
	{Upper: 7, Label: "Minimal"},
	{Upper: 15, Label: "Hafif"},
	{Upper: 25, Label: "Orta"},
	{Upper: 63, Label: "Şiddetli"},
}

// BeckDepressionDefinition returns the Beck Depression Inventory (BDI-II).
func BeckDepressionDefinition() *InstrumentDefinition {
	return &InstrumentDefinition{
		Code:         BeckDepression,
		Name:         "Beck Depresyon Ölçeği",
		ShortCode:    "BDI",
		Description:  "Depresyon semptomlarını değerlendiren 21 soruluk bir öz-bildirim ölçeğidir.",
		Instructions: "Lütfen her ifadeyi okuyun ve son iki hafta içinde kendinizi nasıl hissettiğinizi en iyi yansıtan seçeneği işaretleyin.",
		TimeFrame:    "Son iki hafta",
		Questions:    beckDepressionQuestions(),
		Cutoffs:      beckDepressionCutoffs,
	}
}

// BeckAnxietyDefinition returns the Beck Anxiety Inventory (BAI).
func BeckAnxietyDefinition() *InstrumentDefinition {
	return &InstrumentDefinition{
		Code:         BeckAnxiety,
		Name:         "Beck Anksiyete Ölçeği",
		ShortCode:    "BAI",
		Description:  "Anksiyete semptomlarını değerlendiren 21 soruluk bir öz-bildirim ölçeğidir.",
		Instructions: "Lütfen aşağıdaki belirtilerin her birini son bir hafta içinde ne kadar rahatsız ettiğini belirtin.",
		TimeFrame:    "Son bir hafta",
		Questions:    beckAnxietyQuestions(),
		Cutoffs:      beckAnxietyCutoffs,
	}
}

func opts(labels ...string) []QuestionOption {
	out := make([]QuestionOption, len(labels))
	for i, l := range labels {
		out[i] = QuestionOption{Value: i, Label: l}
	}
	return out
}

func beckDepressionQuestions() []Question {
	return []Question{
		{ID: 1, Text: "Üzüntü", Options: opts(
			"Kendimi üzgün hissetmiyorum",
			"Kendimi üzgün hissediyorum",
			"Her zaman üzgünüm ve bundan kurtulamıyorum",
			"O kadar üzgün ve mutsuzum ki dayanamıyorum")},
		{ID: 2, Text: "Karamsarlık", Options: opts(
			"Gelecek hakkında umutsuz ve karamsar değilim",
			"Gelecek hakkında karamsarım",
			"Gelecekten beklediğim hiçbir şey yok",
			"Geleceğim hakkında umutsuzum ve her şey daha da kötüye gidecek")},
		{ID: 3, Text: "Başarısızlık Duygusu", Options: opts(
			"Kendimi başarısız biri olarak görmüyorum",
			"Çevremdeki birçok kişiden daha fazla başarısızlıklarım oldu",
			"Geçmişe baktığımda başarısızlıklarla dolu olduğunu görüyorum",
			"Kendimi tümüyle başarısız bir insan olarak görüyorum")},
		{ID: 4, Text: "Memnuniyetsizlik", Options: opts(
			"Hayattan eskisi kadar zevk alıyorum",
			"Eskiden olduğu gibi hayattan zevk alamıyorum",
			"Artık hiçbir şey bana zevk vermiyor",
			"Her şeyden sıkılıyorum ve hiçbir şey hoşuma gitmiyor")},
		{ID: 5, Text: "Suçluluk Duygusu", Options: opts(
			"Kendimi suçlu hissetmiyorum",
			"Zaman zaman kendimi suçlu hissediyorum",
			"Çoğu zaman kendimi suçlu hissediyorum",
			"Kendimi her zaman suçlu hissediyorum")},
		{ID: 6, Text: "Cezalandırılma Duygusu", Options: opts(
			"Cezalandırıldığımı düşünmüyorum",
			"Cezalandırılabileceğimi hissediyorum",
			"Cezalandırılmayı bekliyorum",
			"Cezalandırıldığımı hissediyorum")},
		{ID: 7, Text: "Kendinden Hoşnutsuzluk", Options: opts(
			"Kendimi eskisi gibi seviyorum",
			"Kendimi eskisi kadar sevmiyorum",
			"Kendimden hiç hoşlanmıyorum",
			"Kendimden nefret ediyorum")},
		{ID: 8, Text: "Kendini Suçlama", Options: opts(
			"Kendimi başkalarından daha kötü görmüyorum",
			"Zayıf yönlerim veya hatalarım için kendimi eleştiriyorum",
			"Hatalarım için çoğu zaman kendimi suçluyorum",
			"Her kötü şey olduğunda kendimi suçluyorum")},
		{ID: 9, Text: "İntihar Düşünceleri", Options: opts(
			"Kendimi öldürmeyi düşünmüyorum",
			"Bazen kendimi öldürmeyi düşünüyorum ama yapmam",
			"Kendimi öldürmek isterdim",
			"Fırsatını bulsam kendimi öldürürüm")},
		{ID: 10, Text: "Ağlama", Options: opts(
			"Her zamankinden fazla ağlamıyorum",
			"Eskisinden daha fazla ağlıyorum",
			"Her şey için ağlıyorum",
			"Ağlamak istiyorum ama yapamıyorum")},
		{ID: 11, Text: "Sinirlilik", Options: opts(
			"Her zamankinden daha sinirli değilim",
			"Eskisinden daha kolay sinirleniyor ve kızıyorum",
			"Çoğu zaman sinirliyim",
			"Eskiden sinirlendiğim şeylere bile artık sinirlenemiyorum")},
		{ID: 12, Text: "İlgi Kaybı", Options: opts(
			"Başkaları ile görüşme isteğimi kaybetmedim",
			"Eskisine göre insanlarla daha az görüşmek istiyorum",
			"Başkaları ile görüşme isteğimin çoğunu kaybettim",
			"Hiç kimse ile görüşmek istemiyorum")},
		{ID: 13, Text: "Kararsızlık", Options: opts(
			"Eskisi gibi karar verebiliyorum",
			"Eskisinden daha fazla karar vermekte güçlük çekiyorum",
			"Karar verirken çok zorlanıyorum",
			"Artık hiç karar veremiyorum")},
		{ID: 14, Text: "Değersizlik", Options: opts(
			"Görünüşümün eskisinden daha kötü olduğunu düşünmüyorum",
			"Yaşlandığımı ve çekiciliğimi kaybettiğimi düşünüyorum",
			"Görünüşümde artık değiştirilmesi mümkün olmayan kötü değişiklikler olduğunu hissediyorum",
			"Çirkin olduğuma inanıyorum")},
		{ID: 15, Text: "Çalışma Gücü Kaybı", Options: opts(
			"Eskisi kadar iyi çalışabiliyorum",
			"Bir şeyler yapabilmek için gayret göstermem gerekiyor",
			"Herhangi bir şeyi yapabilmek için kendimi çok zorlamam gerekiyor",
			"Hiçbir şey yapamıyorum")},
		{ID: 16, Text: "Uyku Bozukluğu", Options: opts(
			"Eskisi gibi uyuyabiliyorum",
			"Eskisi kadar iyi uyuyamıyorum",
			"1-2 saat erken uyanıyorum ve tekrar uyumakta zorlanıyorum",
			"Çok erken uyanıyor ve tekrar uyuyamıyorum")},
		{ID: 17, Text: "Yorgunluk", Options: opts(
			"Her zamankinden daha çabuk yorulmuyorum",
			"Eskisinden daha çabuk yoruluyorum",
			"Yaptığım her şey beni yoruyor",
			"Kendimi hiçbir şey yapamayacak kadar yorgun hissediyorum")},
		{ID: 18, Text: "İştah Kaybı", Options: opts(
			"İştahım eskisinden farklı değil",
			"İştahım eskisi kadar iyi değil",
			"İştahım çok azaldı",
			"Hiç iştahım yok")},
		{ID: 19, Text: "Kilo Kaybı", Options: opts(
			"Son zamanlarda kilo kaybetmedim",
			"İstemediğim halde 2 kilodan fazla kaybettim",
			"İstemediğim halde 5 kilodan fazla kaybettim",
			"İstemediğim halde 7 kilodan fazla kaybettim")},
		{ID: 20, Text: "Sağlık Kaygısı", Options: opts(
			"Sağlığım beni her zamankinden fazla endişelendirmiyor",
			"Ağrı, sızı, mide bozukluğu, kabızlık gibi şikayetlerim var",
			"Sağlığımla ilgili kaygılarım var ve başka şeyleri düşünmek zor",
			"Sağlığım hakkında o kadar endişeliyim ki başka hiçbir şey düşünemiyorum")},
		{ID: 21, Text: "Cinsel İlgi Kaybı", Options: opts(
			"Son zamanlarda cinsel ilgimde bir değişiklik fark etmedim",
			"Eskisine göre cinsel ilgim azaldı",
			"Cinsel ilgim çok azaldı",
			"Cinsel ilgimi tamamen kaybettim")},
	}
}

var beckAnxietySymptoms = []string{
	"Bedeninizin herhangi bir yerinde uyuşma veya karıncalanma",
	"Sıcak/ateş basmaları",
	"Bacaklarda halsizlik, titreme",
	"Gevşeyememe",
	"Çok kötü şeyler olacak korkusu",
	"Baş dönmesi veya sersemlik",
	"Kalp çarpıntısı",
	"Dengeyi kaybetme duygusu",
	"Korkmuş olma",
	"Sinirlilik",
	"Boğuluyormuş gibi olma duygusu",
	"Ellerde titreme",
	"Titreklik",
	"Kontrolü kaybetme korkusu",
	"Nefes almada güçlük",
	"Ölüm korkusu",
	"Korkuya kapılma",
	"Midede hazımsızlık ya da rahatsızlık hissi",
	"Baygınlık",
	"Yüzde kızarma",
	"Terleme (sıcağa bağlı olmayan)",
}

func beckAnxietyQuestions() []Question {
	questions := make([]Question, len(beckAnxietySymptoms))
	for i, text := range beckAnxietySymptoms {
		questions[i] = Question{
			ID:   i + 1,
			Text: text,
			Options: opts(
				"Hiç",
				"Hafif düzeyde",
				"Orta düzeyde",
				"Ciddi düzeyde"),
		}
	}
	return questions
}
