package catalog

import "nutriplan/internal/meal"

// Bucket is a dietary-profile partition of the catalog.
type Bucket string

const (
	BucketVegan      Bucket = "vegan"
	BucketVegetarian Bucket = "vegetarian"
	BucketOmnivore   Bucket = "omnivore"
)

// Buckets lists every bucket.
var Buckets = []Bucket{BucketVegan, BucketVegetarian, BucketOmnivore}

var table = map[meal.Slot]map[Bucket][]meal.Candidate{
	meal.Breakfast: {
		BucketVegan: {
			{
				Name:        "Avocado Toast with Fruit",
				Cost:        5.50,
				Ingredients: []string{"1 ripe avocado", "2 slices whole grain bread", "1 cup mixed berries", "Lemon juice", "Red pepper flakes"},
				Instructions: []string{
					"Toast bread until golden brown",
					"Mash avocado and spread on toast",
					"Sprinkle with lemon juice and red pepper flakes",
					"Serve with mixed berries on the side",
				},
			},
			{
				Name:        "Overnight Oats with Almond Milk",
				Cost:        3.75,
				Ingredients: []string{"1 cup rolled oats", "1 cup almond milk", "1 tbsp chia seeds", "1 tbsp maple syrup", "1/2 cup mixed berries"},
				Instructions: []string{
					"Combine oats, almond milk, chia seeds, and maple syrup in a jar",
					"Stir well and refrigerate overnight",
					"In the morning, top with mixed berries and enjoy cold",
				},
			},
			{
				Name:        "Tofu Scramble with Vegetables",
				Cost:        4.50,
				Ingredients: []string{"8 oz firm tofu", "1/2 red bell pepper", "1/2 onion", "1 cup spinach", "1/4 tsp turmeric", "Salt and pepper"},
				Instructions: []string{
					"Crumble tofu into a bowl",
					"Sauté diced onions and bell peppers in a pan",
					"Add tofu, turmeric, salt, and pepper",
					"Cook for 5 minutes, then add spinach and cook until wilted",
				},
			},
		},
		BucketVegetarian: {
			{
				Name:        "Greek Yogurt with Berries and Granola",
				Cost:        4.25,
				Ingredients: []string{"1 cup Greek yogurt", "1/2 cup mixed berries", "1/4 cup granola", "1 tbsp honey"},
				Instructions: []string{
					"Place yogurt in a bowl",
					"Top with berries, granola, and drizzle with honey",
				},
			},
			{
				Name:        "Vegetable Omelette with Toast",
				Cost:        5.25,
				Ingredients: []string{"2 eggs", "1/4 cup diced bell peppers", "1/4 cup diced onions", "1/4 cup spinach", "2 tbsp shredded cheese", "1 slice whole wheat toast"},
				Instructions: []string{
					"Whisk eggs in a bowl",
					"Sauté vegetables until softened",
					"Pour eggs over vegetables and cook until set",
					"Sprinkle with cheese, fold, and serve with toast",
				},
			},
			{
				Name:        "Cottage Cheese with Fruit and Nuts",
				Cost:        3.80,
				Ingredients: []string{"1 cup cottage cheese", "1/2 cup mixed fruit", "1 tbsp chopped almonds", "1 tsp honey"},
				Instructions: []string{
					"Place cottage cheese in a bowl",
					"Top with fruit, almonds, and drizzle with honey",
				},
			},
		},
		BucketOmnivore: {
			{
				Name:        "Scrambled Eggs with Turkey Bacon",
				Cost:        5.75,
				Ingredients: []string{"2 eggs", "2 slices turkey bacon", "1 slice whole wheat toast", "1/4 avocado"},
				Instructions: []string{
					"Cook turkey bacon until crisp",
					"Scramble eggs in a separate pan",
					"Toast bread and slice avocado",
					"Serve all components together",
				},
			},
			{
				Name:        "Protein Pancakes with Berries",
				Cost:        6.25,
				Ingredients: []string{"1 cup pancake mix", "1 scoop protein powder", "1/2 cup mixed berries", "1 tbsp maple syrup"},
				Instructions: []string{
					"Mix pancake mix with protein powder and water",
					"Cook pancakes on a griddle until golden brown",
					"Top with berries and maple syrup",
				},
			},
			{
				Name:        "Breakfast Burrito with Salsa",
				Cost:        5.50,
				Ingredients: []string{"1 whole wheat tortilla", "2 eggs", "2 tbsp black beans", "2 tbsp diced bell peppers", "2 tbsp shredded cheese", "2 tbsp salsa"},
				Instructions: []string{
					"Scramble eggs with black beans and bell peppers",
					"Warm tortilla and fill with egg mixture",
					"Sprinkle with cheese and top with salsa",
					"Roll up and enjoy",
				},
			},
		},
	},
	meal.Lunch: {
		BucketVegan: {
			{
				Name:        "Quinoa Salad with Roasted Vegetables",
				Cost:        6.75,
				Ingredients: []string{"1 cup cooked quinoa", "1 cup mixed roasted vegetables", "1/4 cup chickpeas", "2 tbsp lemon-tahini dressing", "Fresh herbs"},
				Instructions: []string{
					"Toss roasted vegetables, quinoa, and chickpeas in a bowl",
					"Drizzle with lemon-tahini dressing",
					"Garnish with fresh herbs",
				},
			},
			{
				Name:        "Lentil Soup with Crusty Bread",
				Cost:        5.50,
				Ingredients: []string{"1 cup lentil soup", "1 small piece crusty bread", "1 tbsp olive oil", "Fresh parsley"},
				Instructions: []string{
					"Heat lentil soup until hot",
					"Drizzle with olive oil and garnish with parsley",
					"Serve with crusty bread on the side",
				},
			},
			{
				Name:        "Veggie Wrap with Hummus",
				Cost:        6.25,
				Ingredients: []string{"1 whole wheat wrap", "2 tbsp hummus", "1/4 cup cucumber", "1/4 cup shredded carrots", "1/4 cup roasted red peppers", "1/4 cup mixed greens"},
				Instructions: []string{
					"Spread hummus on wrap",
					"Layer vegetables on top",
					"Roll up tightly and cut in half to serve",
				},
			},
		},
		BucketVegetarian: {
			{
				Name:        "Mediterranean Salad with Feta",
				Cost:        7.25,
				Ingredients: []string{"2 cups mixed greens", "1/4 cup crumbled feta", "1/4 cup cucumber", "1/4 cup cherry tomatoes", "2 tbsp olives", "2 tbsp balsamic vinaigrette"},
				Instructions: []string{
					"Combine greens, vegetables, olives, and feta in a bowl",
					"Toss with balsamic vinaigrette just before serving",
				},
			},
			{
				Name:        "Caprese Sandwich on Ciabatta",
				Cost:        6.50,
				Ingredients: []string{"1 ciabatta roll", "2 slices fresh mozzarella", "2 slices tomato", "Fresh basil leaves", "1 tbsp balsamic glaze", "1 tsp olive oil"},
				Instructions: []string{
					"Slice ciabatta roll in half",
					"Layer mozzarella, tomato, and basil",
					"Drizzle with olive oil and balsamic glaze",
				},
			},
			{
				Name:        "Vegetable Quiche with Side Salad",
				Cost:        7.75,
				Ingredients: []string{"1 slice vegetable quiche", "1 cup mixed greens", "2 tbsp vinaigrette", "1/4 cup cherry tomatoes"},
				Instructions: []string{
					"Warm quiche slice if desired",
					"Toss greens and tomatoes with vinaigrette",
					"Serve quiche with side salad",
				},
			},
		},
		BucketOmnivore: {
			{
				Name:        "Grilled Chicken Salad",
				Cost:        8.25,
				Ingredients: []string{"4 oz grilled chicken breast", "2 cups mixed greens", "1/4 cup cherry tomatoes", "1/4 cup cucumber", "2 tbsp vinaigrette"},
				Instructions: []string{
					"Slice grilled chicken breast",
					"Combine greens and vegetables in a bowl",
					"Top with chicken and drizzle with vinaigrette",
				},
			},
			{
				Name:        "Turkey and Avocado Wrap",
				Cost:        7.50,
				Ingredients: []string{"1 whole wheat wrap", "3 oz sliced turkey", "1/4 avocado", "1/4 cup mixed greens", "2 slices tomato", "1 tbsp mustard"},
				Instructions: []string{
					"Spread mustard on wrap",
					"Layer turkey, avocado, greens, and tomato",
					"Roll up tightly and cut in half to serve",
				},
			},
			{
				Name:        "Tuna Salad on Whole Grain",
				Cost:        6.75,
				Ingredients: []string{"3 oz tuna salad", "2 slices whole grain bread", "1 leaf lettuce", "1 slice tomato", "1 cup carrot sticks"},
				Instructions: []string{
					"Spread tuna salad on one slice of bread",
					"Add lettuce and tomato",
					"Top with second slice of bread and cut in half",
					"Serve with carrot sticks on the side",
				},
			},
		},
	},
	meal.Snack: {
		BucketVegan: {
			{
				Name:        "Apple with Almond Butter",
				Cost:        2.50,
				Ingredients: []string{"1 medium apple", "1 tbsp almond butter"},
				Instructions: []string{
					"Core and slice apple into wedges",
					"Serve with almond butter for dipping",
				},
			},
			{
				Name:        "Hummus with Vegetable Sticks",
				Cost:        3.25,
				Ingredients: []string{"1/4 cup hummus", "1 cup mixed vegetable sticks (carrots, cucumber, bell peppers)"},
				Instructions: []string{
					"Arrange vegetable sticks on a plate",
					"Serve with hummus in a small bowl for dipping",
				},
			},
			{
				Name:        "Trail Mix with Dried Fruit",
				Cost:        2.75,
				Ingredients: []string{"1/4 cup mixed nuts", "2 tbsp dried cranberries", "1 tbsp pumpkin seeds"},
				Instructions: []string{
					"Combine all ingredients in a small container",
					"Mix well and enjoy",
				},
			},
		},
		BucketVegetarian: {
			{
				Name:        "Greek Yogurt with Honey",
				Cost:        2.75,
				Ingredients: []string{"1/2 cup Greek yogurt", "1 tsp honey", "1 tbsp chopped nuts"},
				Instructions: []string{
					"Place yogurt in a small bowl",
					"Drizzle with honey and sprinkle with chopped nuts",
				},
			},
			{
				Name:         "String Cheese with Fruit",
				Cost:         2.25,
				Ingredients:  []string{"1 string cheese", "1 small apple"},
				Instructions: []string{"Enjoy string cheese with apple slices"},
			},
			{
				Name:         "Cottage Cheese with Pineapple",
				Cost:         2.80,
				Ingredients:  []string{"1/2 cup cottage cheese", "1/4 cup pineapple chunks"},
				Instructions: []string{"Top cottage cheese with pineapple chunks in a small bowl"},
			},
		},
		BucketOmnivore: {
			{
				Name:         "Beef Jerky with Nuts",
				Cost:         3.50,
				Ingredients:  []string{"1 oz beef jerky", "1/4 cup mixed nuts"},
				Instructions: []string{"Combine jerky and nuts in a small container for a convenient protein-rich snack"},
			},
			{
				Name:        "Hard-Boiled Egg with Crackers",
				Cost:        2.25,
				Ingredients: []string{"1 hard-boiled egg", "6 whole grain crackers"},
				Instructions: []string{
					"Peel and slice hard-boiled egg",
					"Serve with crackers",
				},
			},
			{
				Name:         "Protein Bar",
				Cost:         3.00,
				Ingredients:  []string{"1 protein bar (20g protein)"},
				Instructions: []string{"Unwrap and enjoy as a convenient on-the-go snack"},
			},
		},
	},
	meal.Dinner: {
		BucketVegan: {
			{
				Name:        "Chickpea and Vegetable Curry with Rice",
				Cost:        7.50,
				Ingredients: []string{"1 cup chickpeas", "1 cup mixed vegetables", "1/4 cup coconut milk", "1 tbsp curry paste", "1/2 cup brown rice"},
				Instructions: []string{
					"Cook rice according to package instructions",
					"Sauté vegetables until tender",
					"Add chickpeas, coconut milk, and curry paste",
					"Simmer for 10 minutes and serve over rice",
				},
			},
			{
				Name:        "Lentil Pasta with Tomato Sauce",
				Cost:        6.75,
				Ingredients: []string{"1 cup lentil pasta", "1/2 cup tomato sauce", "1 cup sautéed vegetables", "1 tbsp nutritional yeast", "Fresh basil"},
				Instructions: []string{
					"Cook lentil pasta according to package instructions",
					"Heat tomato sauce with sautéed vegetables",
					"Combine sauce with drained pasta",
					"Top with nutritional yeast and fresh basil",
				},
			},
			{
				Name:        "Stuffed Bell Peppers with Quinoa",
				Cost:        8.25,
				Ingredients: []string{"2 bell peppers", "1 cup cooked quinoa", "1/2 cup black beans", "1/4 cup corn", "1/4 cup diced tomatoes", "1 tsp taco seasoning"},
				Instructions: []string{
					"Cut bell peppers in half and remove seeds",
					"Mix quinoa with beans, corn, tomatoes, and seasoning",
					"Fill pepper halves with quinoa mixture",
					"Bake at 375°F for 20-25 minutes until peppers are tender",
				},
			},
		},
		BucketVegetarian: {
			{
				Name:        "Vegetable Lasagna",
				Cost:        8.50,
				Ingredients: []string{"1 slice vegetable lasagna", "1 cup side salad", "1 small garlic bread"},
				Instructions: []string{
					"Heat lasagna until hot throughout",
					"Toss side salad with dressing of choice",
					"Serve with garlic bread",
				},
			},
			{
				Name:        "Eggplant Parmesan with Pasta",
				Cost:        9.25,
				Ingredients: []string{"1 serving eggplant parmesan", "1/2 cup pasta", "1/4 cup marinara sauce", "Fresh basil"},
				Instructions: []string{
					"Cook pasta according to package instructions",
					"Heat eggplant parmesan until hot",
					"Toss pasta with marinara sauce",
					"Serve eggplant parmesan over pasta and garnish with fresh basil",
				},
			},
			{
				Name:        "Black Bean Enchiladas",
				Cost:        7.75,
				Ingredients: []string{"2 corn tortillas", "1/2 cup black beans", "1/4 cup corn", "1/4 cup enchilada sauce", "2 tbsp shredded cheese", "2 tbsp Greek yogurt"},
				Instructions: []string{
					"Mix black beans and corn",
					"Fill tortillas with bean mixture and roll up",
					"Place in baking dish and top with enchilada sauce and cheese",
					"Bake at 350°F for 15-20 minutes",
					"Serve with a dollop of Greek yogurt",
				},
			},
		},
		BucketOmnivore: {
			{
				Name:        "Grilled Salmon with Roasted Vegetables",
				Cost:        10.50,
				Ingredients: []string{"4 oz salmon fillet", "1 cup roasted mixed vegetables", "1/2 cup quinoa", "1 lemon wedge", "Fresh herbs"},
				Instructions: []string{
					"Cook quinoa according to package instructions",
					"Season salmon and grill for 4-5 minutes per side",
					"Roast vegetables at 400°F for 20 minutes",
					"Serve salmon over quinoa with vegetables on the side",
					"Garnish with fresh herbs and lemon wedge",
				},
			},
			{
				Name:        "Chicken Stir-Fry with Brown Rice",
				Cost:        8.75,
				Ingredients: []string{"4 oz chicken breast", "1 cup stir-fried vegetables", "1/2 cup brown rice", "2 tbsp stir-fry sauce"},
				Instructions: []string{
					"Cook rice according to package instructions",
					"Slice chicken into thin strips and stir-fry until cooked through",
					"Add vegetables and stir-fry sauce",
					"Cook for 3-5 more minutes",
					"Serve over brown rice",
				},
			},
			{
				Name:        "Beef and Bean Chili",
				Cost:        7.50,
				Ingredients: []string{"3 oz ground beef", "1/2 cup kidney beans", "1/4 cup diced tomatoes", "1/4 cup diced bell peppers", "1/4 cup diced onions", "1 tbsp chili seasoning"},
				Instructions: []string{
					"Brown ground beef in a pot",
					"Add vegetables and cook until softened",
					"Stir in beans, tomatoes, and seasoning",
					"Simmer for 15-20 minutes until flavors meld",
				},
			},
		},
	},
}
