package service

import (
	"fmt"
	"strings"
)

// recipePromptTemplate is rendered with the ingredient list. Ingredient text
// is interpolated as-is; the model itself filters non-culinary input.
const recipePromptTemplate = `Crie uma receita que tenha como base os ingredientes: %s.
Se algum dos itens informados não for um ingrediente culinário (por exemplo, objetos, partes do corpo ou qualquer coisa imprópria para consumo), ignore-o, não gere a receita e, no lugar dela, alerte o usuário sobre o uso responsável da ferramenta de geração de receitas, mantendo exatamente a mesma estrutura JSON da receita.
A receita pode ser doce ou salgada, entrada, prato principal ou sobremesa.
Dê preferência para receitas de fácil execução.
Retorne apenas as seguintes informações: o título da receita, o porcionamento, o tempo de preparo, os ingredientes em tópicos e o modo de fazer em ordem.
Responda somente com um objeto JSON no formato do modelo abaixo:
{
    "titulo": "título da receita",
    "porcionamento": "porcionamento da receita",
    "tempo_de_preparo": "45 minutos",
    "ingredientes": [
        "ingrediente 1",
        "ingrediente 2",
        "ingrediente 3"
    ],
    "modo_de_fazer": [
        "passo 1",
        "passo 2",
        "passo 3"
    ]
}`

// BuildRecipePrompt renders the recipe instruction for the given ingredients
func BuildRecipePrompt(ingredients []string) string {
	return fmt.Sprintf(recipePromptTemplate, strings.Join(ingredients, ", "))
}
