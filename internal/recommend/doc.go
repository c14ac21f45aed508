// Package recommend implementa o motor de recomendação personalizada de contos.
//
// Por requisição o motor coleta os sinais de engajamento do usuário (leituras, curtidas
// positivas e favoritos), deriva uma afinidade por temas, gera candidatos por conteúdo e
// por filtragem colaborativa em paralelo, ranqueia e completa com conteúdo popular e
// recente quando faltam itens. Toda leitura ao store passa pelo accessor resiliente, de
// modo que falhas do banco degradam o resultado mas nunca viram erro para o chamador.
//
// Invariantes:
//   - o resultado tem no máximo limit itens
//   - nenhum item do histórico do usuário é recomendado
//   - com store e sinais inalterados, chamadas idênticas retornam a mesma lista ordenada
package recommend
