package question

import "quizforge/internal/model"

var subjects = []model.Subject{
	{ID: "science", Name: "Science", Description: "Physics, chemistry and biology basics"},
	{ID: "history", Name: "History", Description: "World history from antiquity to the modern era"},
	{ID: "geography", Name: "Geography", Description: "Countries, capitals and landforms"},
	{ID: "programming", Name: "Programming", Description: "General programming and computer science"},
}

var bank = map[string][]model.Question{
	"science": {
		{Question: "What is the chemical symbol for gold?", Options: []string{"Ag", "Au", "Gd", "Go"}, CorrectIndex: 1, Explanation: "Au comes from the Latin aurum."},
		{Question: "Which planet is known as the red planet?", Options: []string{"Venus", "Jupiter", "Mars", "Mercury"}, CorrectIndex: 2, Explanation: "Iron oxide on the surface of Mars gives it a red color."},
		{Question: "What gas do plants absorb during photosynthesis?", Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, CorrectIndex: 2, Explanation: "Plants take in carbon dioxide and release oxygen."},
		{Question: "What is the speed of light in vacuum, approximately?", Options: []string{"300,000 km/s", "30,000 km/s", "3,000 km/s", "3,000,000 km/s"}, CorrectIndex: 0, Explanation: "Light travels at about 299,792 km/s."},
		{Question: "Which particle carries a negative charge?", Options: []string{"Proton", "Neutron", "Electron", "Photon"}, CorrectIndex: 2, Explanation: "Electrons carry a negative elementary charge."},
		{Question: "What is the powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi apparatus"}, CorrectIndex: 1, Explanation: "Mitochondria produce most of the cell's ATP."},
		{Question: "What is the boiling point of water at sea level in Celsius?", Options: []string{"90", "100", "110", "120"}, CorrectIndex: 1, Explanation: "At one atmosphere water boils at 100 degrees Celsius."},
		{Question: "Which planet has the most confirmed moons?", Options: []string{"Earth", "Saturn", "Mars", "Neptune"}, CorrectIndex: 1, Explanation: "Saturn has overtaken Jupiter in confirmed moons."},
	},
	"history": {
		{Question: "In which year did the Battle of Hastings take place?", Options: []string{"1066", "1215", "987", "1415"}, CorrectIndex: 0, Explanation: "William of Normandy won at Hastings in 1066."},
		{Question: "Who was the first emperor of Rome?", Options: []string{"Julius Caesar", "Augustus", "Nero", "Trajan"}, CorrectIndex: 1, Explanation: "Augustus became the first Roman emperor in 27 BC."},
		{Question: "Which empire built Machu Picchu?", Options: []string{"Aztec", "Maya", "Inca", "Olmec"}, CorrectIndex: 2, Explanation: "The Inca built Machu Picchu in the 15th century."},
		{Question: "In which year did the Berlin Wall fall?", Options: []string{"1979", "1989", "1991", "1961"}, CorrectIndex: 1, Explanation: "The Berlin Wall fell on 9 November 1989."},
		{Question: "Which dynasty built most of the Great Wall of China that stands today?", Options: []string{"Han", "Tang", "Ming", "Qin"}, CorrectIndex: 2, Explanation: "Most surviving sections date from the Ming dynasty."},
		{Question: "Who wrote the Magna Carta's royal seal into law in 1215?", Options: []string{"King John", "Henry VIII", "Richard I", "Edward I"}, CorrectIndex: 0, Explanation: "King John sealed the Magna Carta at Runnymede."},
		{Question: "Which ancient wonder stood in Alexandria?", Options: []string{"Colossus", "Lighthouse", "Hanging Gardens", "Mausoleum"}, CorrectIndex: 1, Explanation: "The Pharos lighthouse stood in Alexandria."},
	},
	"geography": {
		{Question: "What is the capital of Australia?", Options: []string{"Sydney", "Melbourne", "Canberra", "Perth"}, CorrectIndex: 2, Explanation: "Canberra was purpose-built as the capital."},
		{Question: "Which river is the longest in the world?", Options: []string{"Amazon", "Nile", "Yangtze", "Mississippi"}, CorrectIndex: 1, Explanation: "The Nile is usually measured as the longest river."},
		{Question: "What is the capital of Canada?", Options: []string{"Toronto", "Ottawa", "Vancouver", "Montreal"}, CorrectIndex: 1, Explanation: "Ottawa is the capital of Canada."},
		{Question: "Which is the largest ocean?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectIndex: 3, Explanation: "The Pacific covers about a third of the Earth."},
		{Question: "Mount Kilimanjaro is in which country?", Options: []string{"Kenya", "Tanzania", "Uganda", "Ethiopia"}, CorrectIndex: 1, Explanation: "Kilimanjaro is in northeastern Tanzania."},
		{Question: "What is the capital of Japan?", Options: []string{"Osaka", "Kyoto", "Tokyo", "Nagoya"}, CorrectIndex: 2, Explanation: "Tokyo has been the capital since 1868."},
	},
	"programming": {
		{Question: "Which data structure uses FIFO ordering?", Options: []string{"Stack", "Queue", "Tree", "Heap"}, CorrectIndex: 1, Explanation: "A queue removes elements in insertion order."},
		{Question: "What is the time complexity of binary search?", Options: []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"}, CorrectIndex: 1, Explanation: "Binary search halves the range each step."},
		{Question: "Which keyword starts a goroutine in Go?", Options: []string{"async", "spawn", "go", "thread"}, CorrectIndex: 2, Explanation: "The go statement runs a function call concurrently."},
		{Question: "What does SQL stand for?", Options: []string{"Structured Query Language", "Simple Query Language", "Sequential Query Logic", "Standard Question Language"}, CorrectIndex: 0, Explanation: "SQL is the Structured Query Language."},
		{Question: "Which HTTP status code means not found?", Options: []string{"200", "301", "404", "500"}, CorrectIndex: 2, Explanation: "404 Not Found."},
		{Question: "Which data structure uses LIFO ordering?", Options: []string{"Queue", "Stack", "Graph", "Set"}, CorrectIndex: 1, Explanation: "A stack removes the most recently pushed element first."},
		{Question: "What is the worst-case time complexity of quicksort?", Options: []string{"O(n log n)", "O(n)", "O(n^2)", "O(log n)"}, CorrectIndex: 2, Explanation: "Bad pivots degrade quicksort to quadratic time."},
	},
}
