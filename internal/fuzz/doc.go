// Package fuzztests houses Go fuzz harnesses for the detection pipeline
// (decode -> tokenize -> classify -> scan -> annotate). They check the
// structural invariants on arbitrary input rather than exact results.
//
// Назначение: прогонять произвольные байты через весь конвейер и проверять
// разбиение на токены, разбиение на звуковые единицы и обратимость разметки.
//
// Не делает: запись артефактов, выполнение CLI.
package fuzztests
