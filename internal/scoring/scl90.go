package scoring

// SCL-90-R: 90 items rated 0-4, nine symptom dimensions plus the
// additional-items group. The dimensions follow the published item mapping;
// they do not partition the item set (seven items belong only to the
// additional group) and the global indices run over every answered item.

// SCL90Definition returns the Symptom Checklist-90-Revised.
func SCL90Definition() *InstrumentDefinition {
	return &InstrumentDefinition{
		Code:         SCL90,
		Name:         "SCL-90-R Belirti Tarama Listesi",
		ShortCode:    "SCL-90-R",
		Description:  "Ruhsal belirti düzeyini dokuz alt boyutta tarayan 90 maddelik bir öz-bildirim ölçeğidir.",
		Instructions: "Aşağıda zaman zaman herkeste olabilecek yakınma ve sorunların bir listesi vardır. Lütfen her birinin bugün de dahil olmak üzere son bir ay içinde sizi ne ölçüde huzursuz ve tedirgin ettiğini işaretleyin.",
		TimeFrame:    "Son bir ay",
		Questions:    scl90Questions(),
		Scales:       scl90Scales(),
	}
}

func scl90Scales() map[string]Scale {
	return map[string]Scale{
		"somatizasyon": {
			Key:         "somatizasyon",
			Name:        "Somatizasyon",
			Description: "Bedensel işlev bozukluğu algısından kaynaklanan sıkıntılar",
			QuestionIDs: []int{1, 4, 12, 27, 40, 42, 48, 49, 52, 53, 56, 58},
		},
		"obsesif_kompulsif": {
			Key:         "obsesif_kompulsif",
			Name:        "Obsesif-Kompulsif",
			Description: "İstenmeden gelen, yineleyici düşünce ve davranışlar",
			QuestionIDs: []int{3, 9, 10, 28, 38, 45, 46, 51, 55, 65},
		},
		"kisilerarasi_duyarlilik": {
			Key:         "kisilerarasi_duyarlilik",
			Name:        "Kişilerarası Duyarlılık",
			Description: "Yetersizlik ve aşağılık duyguları, kişilerarası rahatsızlık",
			QuestionIDs: []int{6, 21, 34, 36, 37, 41, 61, 69, 73},
		},
		"depresyon": {
			Key:         "depresyon",
			Name:        "Depresyon",
			Description: "Disforik duygudurum, ilgi kaybı, enerji azalması, umutsuzluk",
			QuestionIDs: []int{5, 14, 15, 20, 22, 26, 29, 30, 31, 32, 54, 71, 79},
		},
		"anksiyete": {
			Key:         "anksiyete",
			Name:        "Anksiyete",
			Description: "Sinirlilik, gerginlik, titreme ve panik yaşantıları",
			QuestionIDs: []int{2, 17, 23, 33, 39, 57, 72, 78, 80, 86},
		},
		"ofke_dusmanlik": {
			Key:         "ofke_dusmanlik",
			Name:        "Öfke-Düşmanlık",
			Description: "Öfke, saldırganlık ve kızgınlık yaşantıları",
			QuestionIDs: []int{11, 24, 63, 67, 74, 81},
		},
		"fobik_anksiyete": {
			Key:         "fobik_anksiyete",
			Name:        "Fobik Anksiyete",
			Description: "Belirli kişi, yer, nesne veya durumlara yönelik sürekli korkular",
			QuestionIDs: []int{13, 25, 47, 50, 70, 75, 82},
		},
		"paranoid_dusunce": {
			Key:         "paranoid_dusunce",
			Name:        "Paranoid Düşünce",
			Description: "Yansıtmalı düşünce, kuşkuculuk ve büyüklük düşünceleri",
			QuestionIDs: []int{8, 18, 43, 68, 76, 83},
		},
		"psikotizm": {
			Key:         "psikotizm",
			Name:        "Psikotizm",
			Description: "İçe kapanık, izole yaşam tarzından psikotik belirtilere uzanan yelpaze",
			QuestionIDs: []int{7, 16, 35, 62, 77, 84, 85, 87, 88, 90},
		},
		"ek_maddeler": {
			Key:         "ek_maddeler",
			Name:        "Ek Maddeler",
			Description: "Uyku ve yeme bozuklukları ile suçluluk maddeleri",
			QuestionIDs: []int{19, 44, 59, 60, 64, 66, 89},
		},
	}
}

var scl90Items = []string{
	"Baş ağrısı",
	"Sinirlilik ya da içinin titremesi",
	"Zihinden atamadığınız yineleyici, hoşa gitmeyen düşünceler",
	"Baygınlık ya da baş dönmesi",
	"Cinsel arzu ve ilginin kaybı",
	"Başkaları tarafından eleştirilme duygusu",
	"Herhangi bir kimsenin düşüncelerinizi kontrol edebileceği fikri",
	"Sorunlarınızdan pek çoğu için başkalarının suçlanması gerektiği duygusu",
	"Olayları anımsamada güçlük",
	"Dikkatsizlik ya da sakarlıkla ilgili endişeler",
	"Kolayca gücenme, rahatsız olma hissi",
	"Göğüs ya da kalp bölgesinde ağrılar",
	"Caddelerde veya açık alanlarda korku hissi",
	"Enerjinizde azalma veya yavaşlama hali",
	"Yaşamınızın sonlanması düşünceleri",
	"Başka kişilerin duymadıkları sesleri duyma",
	"Titreme",
	"Çoğu kişiye güvenilmemesi gerektiği hissi",
	"İştah azalması",
	"Kolayca ağlama",
	"Karşı cinsten kişilerle ilgili utangaçlık ve rahatsızlık hissi",
	"Tuzağa düşürülmüş veya yakalanmış olma hissi",
	"Bir neden olmaksızın aniden korkuya kapılma",
	"Kontrol edilemeyen öfke patlamaları",
	"Evden dışarı yalnız çıkma korkusu",
	"Olanlar için kendini suçlama",
	"Belin alt kısmında ağrılar",
	"İşlerin yapılmasında erteleme, engellenme duygusu",
	"Yalnızlık hissi",
	"Karamsarlık",
	"Her şey için çok fazla endişe duyma",
	"Her şeye karşı ilgisizlik hali",
	"Korku hissi",
	"Duygularınızın kolayca incitilebilmesi hali",
	"Diğer insanların sizin özel düşüncelerinizi bilmesi",
	"Başkalarının sizi anlamadığı veya hissedemeyeceği duygusu",
	"Başkalarının sizi sevmediği ya da dostça olmayan davranışlar gösterdiği hissi",
	"İşleri doğru yaptığınızdan emin olmak için çok yavaş yapmak",
	"Kalbin çok hızlı çarpması",
	"Bulantı ve midede rahatsızlık hissi",
	"Kendini başkalarından aşağı görme",
	"Kas ağrıları",
	"Başkalarının sizi gözlediği veya hakkınızda konuştuğu hissi",
	"Uykuya dalmada güçlük",
	"Yaptığınız işleri bir ya da birkaç kez kontrol etme",
	"Karar vermede güçlük",
	"Otobüs, tren, metro gibi araçlarla yolculuk etme korkusu",
	"Nefes almada güçlük",
	"Soğuk veya sıcak basması",
	"Sizi korkutan belirli uğraş, yer veya nesnelerden kaçınma",
	"Zihnin bomboş kalması",
	"Bedeninizin bazı kısımlarında uyuşma, karıncalanma",
	"Boğazınıza bir yumru tıkanmış hissi",
	"Gelecek konusunda ümitsizlik",
	"Düşüncelerinizi bir konuya yoğunlaştırmada güçlük",
	"Bedeninizin çeşitli kısımlarında zayıflık hissi",
	"Gerginlik veya coşku hissi",
	"Kol ve bacaklarda ağırlık hissi",
	"Ölüm ya da ölme düşünceleri",
	"Aşırı yemek yeme",
	"İnsanlar size baktığında veya hakkınızda konuştuğunda rahatsızlık duyma",
	"Size ait olmayan düşüncelere sahip olma",
	"Bir başkasına vurma, zarar verme, yaralama dürtüleri",
	"Sabahın erken saatlerinde uyanma",
	"Yıkanma, sayma, dokunma gibi bazı hareketleri yineleme",
	"Uykuda huzursuzluk, rahat uyuyamama",
	"Bazı şeyleri kırıp dökme isteği",
	"Başkalarının paylaşıp kabul etmediği inanç ve düşüncelerin olması",
	"Başkalarının yanında kendini çok sıkılgan hissetme",
	"Çarşı, sinema gibi kalabalık yerlerde rahatsızlık hissi",
	"Her şeyin bir yük gibi görünmesi",
	"Dehşet ve panik nöbetleri",
	"Toplum içinde yiyip içerken huzursuzluk hissi",
	"Sık sık tartışmaya girme",
	"Yalnız bırakıldığınızda sinirlilik hali",
	"Başarılarınız için yeterince takdir edilmediğiniz duygusu",
	"Başkalarıyla birlikteyken bile yalnızlık hissetme",
	"Yerinizde duramayacak ölçüde rahatsızlık hissetme",
	"Değersizlik duygusu",
	"Size kötü bir şey olacakmış hissi",
	"Bağırma ya da eşyaları fırlatma",
	"Topluluk içinde bayılacağınız korkusu",
	"İzin verirseniz insanların sizi sömüreceği duygusu",
	"Cinsellik konusunda sizi çok rahatsız eden düşüncelerin olması",
	"Günahlarınızdan dolayı cezalandırılmanız gerektiği düşüncesi",
	"Korkutucu türden düşünce ve hayaller",
	"Bedeninizde ciddi bir rahatsızlık olduğu düşüncesi",
	"Başka bir kişiye karşı asla yakınlık duyamama",
	"Suçluluk duygusu",
	"Aklınızda bir bozukluk olduğu düşüncesi",
}

func scl90Questions() []Question {
	questions := make([]Question, len(scl90Items))
	for i, text := range scl90Items {
		questions[i] = Question{
			ID:   i + 1,
			Text: text,
			Options: []QuestionOption{
				{Value: 0, Label: "Hiç"},
				{Value: 1, Label: "Çok az"},
				{Value: 2, Label: "Orta derecede"},
				{Value: 3, Label: "Oldukça fazla"},
				{Value: 4, Label: "İleri derecede"},
			},
		}
	}
	return questions
}
