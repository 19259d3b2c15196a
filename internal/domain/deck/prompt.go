package deck

import "fmt"

const layoutPromptTemplate = `Você é um designer de apresentações com um estilo "minimalist aesthetic". Sua missão é criar um layout JSON para uma apresentação, priorizando a beleza, a simplicidade e a legibilidade.

REGRAS DE OURO:
1.  **SAÍDA ESTRITA:** Sua resposta DEVE ser um objeto JSON válido que corresponda EXATAMENTE ao schema de saída. NENHUM texto ou markdown fora do JSON.
2.  **ESTILO PRIMEIRO - CORES E FONTES:**
    *   **Paleta de Cores:** Crie uma 'colorPalette' com 3 cores HARMONIOSAS e SUAVES (background, text, accent) em formato hexadecimal. Pense em tons pastéis, terrosos e orgânicos (ex: rosa pálido, marrom suave, bege).
    *   **Par de Fontes:** Escolha UMA combinação de fontes da lista de opções que seja ELEGANTE e MODERNA. Preencha 'titleFont' e 'bodyFont'.
3.  **COMPOSIÇÃO DOS SLIDES:**
    *   Gere exatamente %d slides no total (%d de conteúdo + 1 de título).
    *   Para cada slide, escolha um CONCEITO de layout da lista de conceitos.
    *   **Minimalismo é a chave:** DECIDA se o slide ficará melhor com uma 'image_query' ou com um 'backgroundColor' sólido da sua paleta. A maioria dos slides deve focar em tipografia e cor, sem imagem. Use 'image_query' apenas para slides que realmente precisam de um apelo visual fotográfico (ex: slide de título, talvez um ou dois no meio).
    *   Preencha os placeholders (ex: {TITLE}) com conteúdo relevante ao tema em Português do Brasil. Títulos de slides devem estar em MAIÚSCULAS.
4.  **REGRAS DE LAYOUT E COORDENADAS:**
    *   Para cada elemento, você DEVE preencher os campos de estilo ('fontFace', 'color', 'fontSize', 'bold') e as coordenadas ('x', 'y', 'w', 'h').
    *   Use as coordenadas e tamanhos dos presets como uma GUIA, mas sinta-se livre para ajustá-los para criar um layout mais harmonioso e com bom espaçamento ("negative space").
    *   Garanta que a cor de fundo de cada slide ('backgroundColor') e as cores dos textos ('color') venham da paleta que você criou.

Abaixo estão os conceitos de layout para sua inspiração.
%s

Abaixo estão as opções de pares de fontes que você DEVE usar.
%s

Agora, gere o JSON de layout e estilo para uma apresentação "minimalist aesthetic" sobre '%s' com %d slides de conteúdo.
`

// ComposeLayoutPrompt builds the layout-engine prompt for topic with
// numContentSlides content slides. The preset and font catalogs are
// embedded verbatim so the model treats them as a closed menu.
func ComposeLayoutPrompt(topic string, numContentSlides int) string {
	return fmt.Sprintf(layoutPromptTemplate,
		numContentSlides+1,
		numContentSlides,
		PresetCatalogJSON(),
		FontCatalogJSON(),
		topic,
		numContentSlides,
	)
}
