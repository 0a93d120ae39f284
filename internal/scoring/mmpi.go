package scoring

// MMPIDefinition returns the MMPI placeholder instrument. Full MMPI scoring
// (validity and clinical scales with gender-normed T-scores) requires
// professional software and licensed norm tables; this system administers
// the form but never scores it. The engine echoes submissions back with a
// fixed professional-evaluation notice.
func MMPIDefinition() *InstrumentDefinition {
	return &InstrumentDefinition{
		Code:        MMPI,
		Name:        "Minnesota Çok Yönlü Kişilik Envanteri",
		ShortCode:   "MMPI",
		Description: "Kişilik özelliklerini ve psikopatolojiyi değerlendiren kapsamlı bir envanterdir. Puanlama profesyonel değerlendirme gerektirir.",
	}
}
