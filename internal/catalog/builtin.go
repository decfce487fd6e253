package catalog

func builtin() []Item {
	return []Item{
		{Kind: KindTheme, Name: "Fruits & Veggies", Price: 0, Unlocked: true, Symbols: []string{
			"🍎", "🍌", "🍇", "🍓", "🍒", "🍍", "🍐", "🍏", "🍊", "🍉",
			"🍑", "🥥", "🥝", "🍋", "🍈", "🥭", "🥬", "🥑", "🍆", "🥔",
		}},
		{Kind: KindTheme, Name: "Animals", Price: 50, Symbols: []string{
			"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯",
			"🦁", "🐮", "🐷", "🐸", "🐵", "🐔", "🐧", "🐥", "🦉", "🐴",
		}},
		{Kind: KindTheme, Name: "Emotions", Price: 100, Symbols: []string{
			"😒", "😂", "😍", "😡", "😭", "😱", "😅", "😆", "🤩", "😎",
			"😤", "😢", "😳", "🤯", "😴", "😇", "😈", "🥰", "🙄", "😬",
		}},
		{Kind: KindTheme, Name: "Food", Price: 150, Symbols: []string{
			"🍔", "🍟", "🍕", "🌮", "🍣", "🍩", "🥪", "🍝", "🍜", "🍰",
			"🍗", "🥓", "🍞", "🌯", "🍛", "🍪", "🍫", "🧀", "🥚", "🥗",
		}},

		{Kind: KindCardStyle, Name: "Classic", Price: 0, Unlocked: true, Glyph: "❓"},
		{Kind: KindCardStyle, Name: "Star", Price: 50, Glyph: "⭐"},
		{Kind: KindCardStyle, Name: "Heart", Price: 100, Glyph: "❤️"},
		{Kind: KindCardStyle, Name: "Fire", Price: 150, Glyph: "🔥"},

		{Kind: KindBackground, Name: "Classic", Price: 0, Unlocked: true, Image: "bg_classic"},
		{Kind: KindBackground, Name: "Desert", Price: 100, Image: "bg_desert"},
		{Kind: KindBackground, Name: "Space", Price: 100, Image: "bg_space"},
		{Kind: KindBackground, Name: "City", Price: 100, Image: "bg_city"},

		{Kind: KindMusic, Name: "Track 1", Price: 0, Unlocked: true, Audio: "main_music"},
		{Kind: KindMusic, Name: "Track 2", Price: 50, Audio: "chill_1"},
		{Kind: KindMusic, Name: "Track 3", Price: 100, Audio: "chill_gamer"},
		{Kind: KindMusic, Name: "Track 4", Price: 150, Audio: "blocks"},
	}
}
